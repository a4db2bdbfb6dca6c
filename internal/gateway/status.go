package gateway

import (
	"time"

	"comgatepay/internal/comgate"
)

// PaymentState is the closed set of states a status query can resolve to.
type PaymentState string

const (
	StatePending    PaymentState = "pending"
	StatePaid       PaymentState = "paid"
	StateCancelled  PaymentState = "cancelled"
	StateAuthorized PaymentState = "authorized"
)

// UI highlight classes per state.
const (
	highlightSuccess = "success"
	highlightDanger  = "danger"
	highlightWarning = "warning"
	highlightInfo    = "info"
)

// Human-readable state descriptions, as shown to the payer.
const (
	descPaid       = "Platba proběhla úspěšně"
	descCancelled  = "Požadavek byl zrušen"
	descPending    = "Čekáme na dokončení platby"
	descAuthorized = "Platba byla úspěšně autorizována"
)

// PaymentStatus is a point-in-time snapshot of one transaction. It is
// never mutated; each query produces a new instance.
type PaymentStatus struct {
	TransactionID string
	ReferenceID   string

	// VariableSymbol is assigned by the gateway, not the caller.
	VariableSymbol string

	Method      string
	State       PaymentState
	Description string
	Highlight   string

	// Paid and Cancelled are derived from State, never set independently.
	Paid      bool
	Cancelled bool

	// CompletedAt is set iff the state is paid. It records when the paid
	// state was observed, not when the payer actually paid.
	CompletedAt *time.Time
}

// mapState classifies a gateway status code. Anything outside the closed
// set is an UnknownStatusError.
func mapState(gatewayStatus, transID string) (PaymentState, error) {
	switch gatewayStatus {
	case comgate.StatusPending:
		return StatePending, nil
	case comgate.StatusPaid:
		return StatePaid, nil
	case comgate.StatusCancelled:
		return StateCancelled, nil
	case comgate.StatusAuthorized:
		return StateAuthorized, nil
	default:
		return "", &UnknownStatusError{Status: gatewayStatus, TransactionID: transID}
	}
}

func stateDescription(state PaymentState) string {
	switch state {
	case StatePaid:
		return descPaid
	case StateCancelled:
		return descCancelled
	case StateAuthorized:
		return descAuthorized
	default:
		return descPending
	}
}

func stateHighlight(state PaymentState) string {
	switch state {
	case StatePaid:
		return highlightSuccess
	case StateCancelled:
		return highlightDanger
	case StateAuthorized:
		return highlightInfo
	default:
		return highlightWarning
	}
}

// newPaymentStatus builds a snapshot with the derived fields computed
// strictly from the state.
func newPaymentStatus(transID, refID, vs, method string, state PaymentState) *PaymentStatus {
	status := &PaymentStatus{
		TransactionID:  transID,
		ReferenceID:    refID,
		VariableSymbol: vs,
		Method:         method,
		State:          state,
		Description:    stateDescription(state),
		Highlight:      stateHighlight(state),
		Paid:           state == StatePaid,
		Cancelled:      state == StateCancelled,
	}
	if status.Paid {
		now := time.Now()
		status.CompletedAt = &now
	}
	return status
}
