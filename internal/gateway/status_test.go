package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"

	"comgatepay/internal/comgate"
)

func TestMapStateClosedSet(t *testing.T) {
	cases := map[string]PaymentState{
		comgate.StatusPending:    StatePending,
		comgate.StatusPaid:       StatePaid,
		comgate.StatusCancelled:  StateCancelled,
		comgate.StatusAuthorized: StateAuthorized,
	}
	for input, want := range cases {
		got, err := mapState(input, "T1")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestMapStateUnknownIsFatal(t *testing.T) {
	for _, input := range []string{"REFUNDED", "paid", "", "DONE"} {
		_, err := mapState(input, "T1")
		require.Error(t, err)

		var unknownErr *UnknownStatusError
		require.ErrorAs(t, err, &unknownErr)
		require.Equal(t, input, unknownErr.Status)
		require.Equal(t, "T1", unknownErr.TransactionID)
	}
}

func TestDerivedFieldsFollowState(t *testing.T) {
	paid := newPaymentStatus("T1", "SS/VS", "123", "CARD_CZ_CSOB_2", StatePaid)
	require.True(t, paid.Paid)
	require.False(t, paid.Cancelled)
	require.NotNil(t, paid.CompletedAt)
	require.Equal(t, "success", paid.Highlight)

	cancelled := newPaymentStatus("T1", "SS/VS", "", "", StateCancelled)
	require.False(t, cancelled.Paid)
	require.True(t, cancelled.Cancelled)
	require.Nil(t, cancelled.CompletedAt)
	require.Equal(t, "danger", cancelled.Highlight)

	pending := newPaymentStatus("T1", "SS/VS", "", "", StatePending)
	require.False(t, pending.Paid)
	require.False(t, pending.Cancelled)
	require.Nil(t, pending.CompletedAt)

	authorized := newPaymentStatus("T1", "SS/VS", "", "", StateAuthorized)
	require.False(t, authorized.Paid)
	require.False(t, authorized.Cancelled)
	require.Nil(t, authorized.CompletedAt)
}

func TestPaymentRequestReferenceID(t *testing.T) {
	req := &PaymentRequest{SpecificSymbol: "2024001", VariableSymbol: "555"}
	require.Equal(t, "2024001/555", req.ReferenceID())
}

func TestPaymentRequestAmountMinorUnits(t *testing.T) {
	req := &PaymentRequest{AmountCZK: 50.25}
	require.Equal(t, int64(5025), req.AmountMinorUnits())

	req.AmountCZK = 0.1
	require.Equal(t, int64(10), req.AmountMinorUnits())
}

func TestPaymentRequestValidate(t *testing.T) {
	valid := PaymentRequest{
		SpecificSymbol: "2024001",
		VariableSymbol: "555",
		PayerEmail:     "payer@example.com",
		AmountCZK:      50.25,
	}
	require.NoError(t, valid.Validate())

	missingSS := valid
	missingSS.SpecificSymbol = ""
	require.Error(t, missingSS.Validate())

	negative := valid
	negative.AmountCZK = -1
	require.Error(t, negative.Validate())

	zero := valid
	zero.AmountCZK = 0
	require.Error(t, zero.Validate())
}
