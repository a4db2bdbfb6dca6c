package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"comgatepay/internal/comgate"
	"comgatepay/internal/gateway"
	"comgatepay/internal/models"
	"comgatepay/internal/notify"
	"comgatepay/internal/repository"
)

// RoutePaymentReturn names the echo route the gateway sends payers back
// to. The return URL registered with the gateway is generated from it.
const RoutePaymentReturn = "payment-return"

// PaymentHandler drives checkout and gateway-return requests.
type PaymentHandler struct {
	gateway  *gateway.Gateway
	payments *repository.PaymentRepository
	notifier *notify.Notifier
	logger   *zap.Logger
}

func NewPaymentHandler(
	gw *gateway.Gateway,
	payments *repository.PaymentRepository,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		gateway:  gw,
		payments: payments,
		notifier: notifier,
		logger:   logger,
	}
}

type checkoutRequest struct {
	SpecificSymbol string  `json:"specific_symbol"`
	PayerName      string  `json:"payer_name"`
	PayerEmail     string  `json:"payer_email"`
	Description    string  `json:"description"`
	AmountCZK      float64 `json:"amount_czk"`
	CardOnly       bool    `json:"card_only"`
}

// Checkout opens a payment and hands the redirect URL to the caller. The
// pending record is persisted before the response goes out, so the
// transaction id survives even if the payer never comes back.
func (h *PaymentHandler) Checkout(c echo.Context) error {
	var body checkoutRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	req := &gateway.PaymentRequest{
		SpecificSymbol: body.SpecificSymbol,
		VariableSymbol: uuid.NewString(),
		PayerName:      body.PayerName,
		PayerEmail:     body.PayerEmail,
		Description:    body.Description,
		AmountCZK:      body.AmountCZK,
		CardOnly:       body.CardOnly,
	}

	route := gateway.NewReturnRoute(RoutePaymentReturn, nil)
	status, redirect, err := h.gateway.CreatePayment(c.Request().Context(), req, route)
	if err != nil {
		var gwErr *gateway.GatewayError
		if errors.As(err, &gwErr) {
			h.logger.Error("gateway refused payment", zap.Error(err))
			return c.JSON(http.StatusBadGateway, map[string]string{"error": gwErr.Message})
		}
		h.logger.Warn("checkout rejected", zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	record := &models.Payment{
		TransactionID:  status.TransactionID,
		ReferenceID:    status.ReferenceID,
		SpecificSymbol: req.SpecificSymbol,
		VariableSymbol: req.VariableSymbol,
		PayerName:      req.PayerName,
		PayerEmail:     req.PayerEmail,
		Description:    req.Description,
		AmountCents:    req.AmountMinorUnits(),
		State:          string(status.State),
	}
	if err := h.payments.Create(record); err != nil {
		h.logger.Error("failed to persist payment record",
			zap.String("transId", status.TransactionID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to persist payment"})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"transaction_id": status.TransactionID,
		"reference_id":   status.ReferenceID,
		"redirect":       redirect,
	})
}

// Return handles the payer coming back from the gateway.
func (h *PaymentHandler) Return(c echo.Context) error {
	params := c.QueryParams()
	if !h.gateway.IsReturnRequest(params) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "not a gateway return request"})
	}

	status, err := h.gateway.VerifyReturnStatus(c.Request().Context(), params)
	if err != nil {
		return h.statusError(c, err)
	}

	h.recordStatus(c, status)
	return c.JSON(http.StatusOK, statusResponse(status))
}

// Status serves direct status lookups by transaction id, the server-side
// polling path.
func (h *PaymentHandler) Status(c echo.Context) error {
	transID := c.Param("transId")

	status, err := h.gateway.VerifyStatusByTransactionID(c.Request().Context(), transID)
	if err != nil {
		return h.statusError(c, err)
	}

	h.recordStatus(c, status)
	return c.JSON(http.StatusOK, statusResponse(status))
}

func (h *PaymentHandler) recordStatus(c echo.Context, status *gateway.PaymentStatus) {
	err := h.payments.UpdateState(status.TransactionID, string(status.State), status.Method, status.CompletedAt)
	if err != nil {
		h.logger.Error("failed to update payment record",
			zap.String("transId", status.TransactionID), zap.Error(err))
	}

	if !status.Paid {
		return
	}

	amount := int64(0)
	record, err := h.payments.FindByTransactionID(status.TransactionID)
	if err == nil {
		amount = record.AmountCents
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.Warn("payment record lookup failed",
			zap.String("transId", status.TransactionID), zap.Error(err))
	}
	h.notifier.PaymentPaid(c.Request().Context(), status, amount)
}

func (h *PaymentHandler) statusError(c echo.Context, err error) error {
	var cbErr *gateway.CallbackError
	if errors.As(err, &cbErr) {
		h.logger.Warn("invalid gateway callback", zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": cbErr.Reason})
	}
	var unknownErr *gateway.UnknownStatusError
	if errors.As(err, &unknownErr) {
		h.logger.Error("unknown gateway status", zap.Error(err))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "unknown payment status"})
	}
	if errors.Is(err, comgate.ErrPaymentNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "payment not found"})
	}
	h.logger.Error("status query failed", zap.Error(err))
	return c.JSON(http.StatusBadGateway, map[string]string{"error": "gateway unavailable"})
}

func statusResponse(status *gateway.PaymentStatus) map[string]interface{} {
	var completedAt *string
	if status.CompletedAt != nil {
		formatted := status.CompletedAt.Format(time.RFC3339)
		completedAt = &formatted
	}
	return map[string]interface{}{
		"transaction_id":  status.TransactionID,
		"reference_id":    status.ReferenceID,
		"variable_symbol": status.VariableSymbol,
		"state":           status.State,
		"description":     status.Description,
		"highlight":       status.Highlight,
		"method":          status.Method,
		"paid":            status.Paid,
		"cancelled":       status.Cancelled,
		"completed_at":    completedAt,
	}
}
