package gateway

import "fmt"

// GatewayError means the gateway refused to open a payment. It carries the
// gateway's own message.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "gateway: create payment rejected: " + e.Message
}

// CallbackError means a return request could not be trusted: parameters
// were missing, the hash did not match, or the gateway does not know the
// transaction. Never treat it as "not paid".
type CallbackError struct {
	Reason        string
	TransactionID string
	ReferenceID   string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("gateway: invalid callback: %s (transId=%q, refId=%q)",
		e.Reason, e.TransactionID, e.ReferenceID)
}

// UnknownStatusError means the gateway reported a status outside the
// recognized set. Mapping it silently would risk misreporting payment
// state, so it is fatal to the query.
type UnknownStatusError struct {
	Status        string
	TransactionID string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("gateway: unknown payment status %q (transId=%q)",
		e.Status, e.TransactionID)
}
