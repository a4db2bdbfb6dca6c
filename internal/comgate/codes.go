package comgate

// Payment status values reported by the gateway.
const (
	StatusPending    = "PENDING"
	StatusPaid       = "PAID"
	StatusCancelled  = "CANCELLED"
	StatusAuthorized = "AUTHORIZED"
)

// Result codes returned in the `code` field of API responses.
const (
	CodeOK              = 0
	CodeUnknownError    = 1100
	CodeMethodInvalid   = 1103
	CodePaymentNotFound = 1400
)

// Currency codes. The merchant account settles in CZK.
const (
	CurrencyCZK = "CZK"
	CurrencyEUR = "EUR"
)

// Payment method groups accepted by the create call. Groups are combined
// with " - " meaning set difference (ALL minus the listed groups).
const (
	MethodAll            = "ALL"
	MethodAllCards       = "CARD_ALL"
	MethodLoanAll        = "LOAN_ALL"
	MethodLaterAll       = "LATER_ALL"
	MethodPartAll        = "PART_ALL"
	MethodBankOtherCZ    = "BANK_OTHER_CZ_TRANSFER"
	MethodBankCZABCvak   = "BANK_CZ_AB_CVAK"
	MethodPartTwisto     = "PART_TWISTO"
	MethodPartEssox      = "PART_ESSOX"
)

// Product category codes.
const (
	CategoryPhysical = "PHYSICAL"
	CategoryOther    = "OTHER"
)

// Delivery codes.
const (
	DeliveryElectronic = "ELECTRONIC_DELIVERY"
	DeliveryHome       = "HOME_DELIVERY"
)
