package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"comgatepay/internal/comgate"
)

// Callback query parameter names. These are a deployed contract: changing
// them invalidates every callback URL already registered with the gateway.
const (
	ParamReferenceID     = "ref"
	ParamTransactionID   = "tId"
	ParamTransactionCode = "tC"
	ParamHash            = "hash"
)

// Client is the slice of the gateway API the facade needs.
type Client interface {
	Create(ctx context.Context, req *comgate.CreateRequest) (*comgate.CreateResponse, error)
	Status(ctx context.Context, transID string) (*comgate.StatusResponse, error)
}

// Gateway orchestrates payment creation and callback verification. It is
// stateless; one instance is safe to share across requests.
type Gateway struct {
	client   Client
	urls     URLGenerator
	auth     *Authenticator
	testMode bool
	logger   *zap.Logger
}

func New(client Client, urls URLGenerator, auth *Authenticator, testMode bool, logger *zap.Logger) *Gateway {
	return &Gateway{
		client:   client,
		urls:     urls,
		auth:     auth,
		testMode: testMode,
		logger:   logger,
	}
}

// CreatePayment opens a payment on the gateway and returns the initial
// pending status together with the redirect URL for the payer.
//
// Two-phase contract: persist the returned transaction id BEFORE sending
// the payer to the redirect URL, or a crash in between loses the only key
// to the payment.
func (g *Gateway) CreatePayment(ctx context.Context, req *PaymentRequest, route *ReturnRoute) (*PaymentStatus, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	refID := req.ReferenceID()
	transactionCode := ""
	if g.auth.Binding() == BindTransaction {
		transactionCode = uuid.NewString()
	}

	returnURL, err := g.buildReturnURL(route, refID, transactionCode)
	if err != nil {
		return nil, "", err
	}

	createReq := &comgate.CreateRequest{
		Price:                req.AmountMinorUnits(),
		Currency:             comgate.CurrencyCZK,
		Label:                req.Description,
		RefID:                refID,
		Email:                req.PayerEmail,
		FullName:             req.PayerName,
		Method:               paymentMethods(req.CardOnly),
		Category:             comgate.CategoryOther,
		Delivery:             comgate.DeliveryElectronic,
		PrepareOnly:          true,
		Test:                 g.testMode,
		URLPaid:              returnURL,
		URLPaidRedirect:      returnURL,
		URLCancelled:         returnURL,
		URLCancelledRedirect: returnURL,
		URLPending:           returnURL,
		URLPendingRedirect:   returnURL,
	}
	if req.Expiration > 0 {
		createReq.ExpirationTime = fmt.Sprintf("%dm", int64(req.Expiration.Minutes()))
	}

	resp, err := g.client.Create(ctx, createReq)
	if err != nil {
		return nil, "", err
	}
	if resp.Code != comgate.CodeOK {
		return nil, "", &GatewayError{Message: resp.Message}
	}

	g.logger.Info("payment created",
		zap.String("transId", resp.TransID),
		zap.String("refId", refID),
		zap.Bool("test", g.testMode))

	status := newPaymentStatus(resp.TransID, refID, "", "", StatePending)
	return status, resp.Redirect, nil
}

// IsReturnRequest reports whether the query parameters look like a
// gateway callback: transaction id, reference id and hash all present.
func (g *Gateway) IsReturnRequest(params url.Values) bool {
	return params.Get(ParamTransactionID) != "" &&
		params.Get(ParamReferenceID) != "" &&
		params.Get(ParamHash) != ""
}

// VerifyReturnStatus authenticates a gateway callback and resolves the
// current payment status. Call it before trusting anything in the query.
func (g *Gateway) VerifyReturnStatus(ctx context.Context, params url.Values) (*PaymentStatus, error) {
	transID := params.Get(ParamTransactionID)
	refID := params.Get(ParamReferenceID)

	if !g.IsReturnRequest(params) {
		return nil, &CallbackError{
			Reason:        "missing callback parameters",
			TransactionID: transID,
			ReferenceID:   refID,
		}
	}

	transactionCode := params.Get(ParamTransactionCode)
	if g.auth.Binding() == BindTransaction && transactionCode == "" {
		return nil, &CallbackError{
			Reason:        "missing transaction code",
			TransactionID: transID,
			ReferenceID:   refID,
		}
	}

	if _, ok := g.auth.Verify(refID, transactionCode, params.Get(ParamHash)); !ok {
		g.logger.Warn("callback hash mismatch",
			zap.String("transId", transID),
			zap.String("refId", refID))
		return nil, &CallbackError{
			Reason:        "hash mismatch",
			TransactionID: transID,
			ReferenceID:   refID,
		}
	}

	resp, err := g.client.Status(ctx, transID)
	if err != nil {
		if errors.Is(err, comgate.ErrPaymentNotFound) {
			return nil, &CallbackError{
				Reason:        "unknown transaction id",
				TransactionID: transID,
				ReferenceID:   refID,
			}
		}
		return nil, err
	}

	return g.mapResponse(resp)
}

// VerifyStatusByTransactionID queries the current status directly,
// bypassing callback validation. Used for server-side polling.
func (g *Gateway) VerifyStatusByTransactionID(ctx context.Context, transID string) (*PaymentStatus, error) {
	resp, err := g.client.Status(ctx, transID)
	if err != nil {
		return nil, err
	}
	return g.mapResponse(resp)
}

func (g *Gateway) mapResponse(resp *comgate.StatusResponse) (*PaymentStatus, error) {
	state, err := mapState(resp.Status, resp.TransID)
	if err != nil {
		return nil, err
	}
	return newPaymentStatus(resp.TransID, resp.RefID, resp.VS, resp.Method, state), nil
}

// buildReturnURL generates the callback URL: the base comes from the host
// router, the gateway template query is appended literally so no encoder
// can touch the ${id}/${refId} delimiters.
func (g *Gateway) buildReturnURL(route *ReturnRoute, refID, transactionCode string) (string, error) {
	base, err := g.urls.Generate(route.Name(), route.Params())
	if err != nil {
		return "", err
	}

	hash := g.auth.Compute(refID, transactionCode)

	var query strings.Builder
	query.WriteString(ParamHash + "=" + hash)
	if g.auth.Binding() == BindTransaction {
		query.WriteString("&" + ParamTransactionCode + "=" + url.QueryEscape(transactionCode))
	}
	query.WriteString("&" + ParamTransactionID + "=" + TransactionIDTemplate)
	query.WriteString("&" + ParamReferenceID + "=" + ReferenceIDTemplate)

	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + query.String(), nil
}

func paymentMethods(cardOnly bool) string {
	if cardOnly {
		return comgate.MethodAllCards
	}
	return strings.Join([]string{
		comgate.MethodAll,
		comgate.MethodLoanAll,
		comgate.MethodLaterAll,
		comgate.MethodPartAll,
		comgate.MethodBankOtherCZ,
		comgate.MethodBankCZABCvak,
		comgate.MethodPartTwisto,
		comgate.MethodPartEssox,
	}, " - ")
}
