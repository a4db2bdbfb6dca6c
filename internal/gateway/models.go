package gateway

import (
	"errors"
	"math"
	"time"
)

// SymbolDelimiter joins the specific and variable symbol into the
// reference id sent to the gateway.
const SymbolDelimiter = "/"

// PaymentRequest describes a payment to open. It is a value object; build
// it once per attempt and do not mutate it.
type PaymentRequest struct {
	SpecificSymbol string
	VariableSymbol string
	PayerName      string
	PayerEmail     string
	Description    string

	// AmountCZK is the amount in whole currency units, e.g. 50.25 for
	// 50,25 Kč.
	AmountCZK float64

	// Expiration optionally shortens the gateway-side payment validity.
	Expiration time.Duration

	// CardOnly restricts the offered payment methods to card payments.
	CardOnly bool
}

// Validate checks the invariants a request must hold before it is sent.
func (r *PaymentRequest) Validate() error {
	if r.SpecificSymbol == "" {
		return errors.New("payment request: specific symbol is empty")
	}
	if r.VariableSymbol == "" {
		return errors.New("payment request: variable symbol is empty")
	}
	if r.AmountCZK <= 0 {
		return errors.New("payment request: amount must be positive")
	}
	if r.PayerEmail == "" {
		return errors.New("payment request: payer email is empty")
	}
	return nil
}

// ReferenceID is the caller-assigned key the gateway echoes back in
// callbacks: specific symbol, delimiter, variable symbol.
func (r *PaymentRequest) ReferenceID() string {
	return r.SpecificSymbol + SymbolDelimiter + r.VariableSymbol
}

// AmountMinorUnits converts the amount to haléře for the wire.
func (r *PaymentRequest) AmountMinorUnits() int64 {
	return int64(math.Round(r.AmountCZK * 100))
}

// ReturnRoute names the host route the gateway sends the payer back to,
// plus any extra route parameters. It is consumed during return-URL
// construction and discarded; treat it as read-only input.
type ReturnRoute struct {
	name   string
	params map[string]string
}

func NewReturnRoute(name string, params map[string]string) *ReturnRoute {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return &ReturnRoute{name: name, params: copied}
}

func (r *ReturnRoute) Name() string {
	return r.name
}

// Params returns the route parameters. The returned map is live during
// URL construction only.
func (r *ReturnRoute) Params() map[string]string {
	return r.params
}
