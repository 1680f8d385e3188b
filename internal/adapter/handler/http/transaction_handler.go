package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/adapter/metrics"
	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/usecase"
)

type TransactionHandler struct {
	payments *usecase.PaymentService
	metrics  *metrics.HTTPMetrics
	logger   *zap.Logger
}

func NewTransactionHandler(payments *usecase.PaymentService, m *metrics.HTTPMetrics, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		payments: payments,
		metrics:  m,
		logger:   logger,
	}
}

type PayUserRequest struct {
	Amount             int64  `json:"amount" validate:"required,gt=0"`
	Currency           string `json:"currency"`
	RecipientAccountID string `json:"recipient_account_id" validate:"required"`
	PaymentMethodID    string `json:"payment_method_id" validate:"required"`
}

type CreatePaymentIntentRequest struct {
	Amount             int64  `json:"amount" validate:"required,gt=0"`
	Currency           string `json:"currency"`
	RecipientAccountID string `json:"recipient_account_id" validate:"required"`
	SavePaymentMethod  bool   `json:"save_payment_method"`
}

// PayUser charges the sender's instrument and routes the funds to the
// recipient in one destination charge.
func (h *TransactionHandler) PayUser(c echo.Context) error {
	var req PayUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	h.logger.Info("pay user",
		zap.String("sender", c.Param("id")),
		zap.String("recipient", req.RecipientAccountID),
		zap.Int64("amount", req.Amount))

	receipt, err := h.payments.PayUser(c.Request().Context(), c.Param("id"), &usecase.PayUserInput{
		Amount:             req.Amount,
		Currency:           req.Currency,
		RecipientAccountID: req.RecipientAccountID,
		PaymentMethodID:    req.PaymentMethodID,
	})
	if err != nil {
		h.metrics.PaymentsTotal.WithLabelValues(paymentOutcome(err)).Inc()
		return writeError(c, err)
	}
	h.metrics.PaymentsTotal.WithLabelValues("succeeded").Inc()
	return c.JSON(http.StatusOK, receipt)
}

// CreatePaymentIntent prepares an unconfirmed charge and returns the
// client secret for client-side confirmation.
func (h *TransactionHandler) CreatePaymentIntent(c echo.Context) error {
	var req CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.payments.CreatePaymentIntent(c.Request().Context(), c.Param("id"), &usecase.PaymentIntentInput{
		Amount:             req.Amount,
		Currency:           req.Currency,
		RecipientAccountID: req.RecipientAccountID,
		SavePaymentMethod:  req.SavePaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func paymentOutcome(err error) string {
	if domainErrors.KindOf(err) == domainErrors.KindCardDeclined {
		return "declined"
	}
	return "failed"
}
