package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/usecase"
)

type PaymentMethodHandler struct {
	instruments *usecase.InstrumentService
	logger      *zap.Logger
}

func NewPaymentMethodHandler(instruments *usecase.InstrumentService, logger *zap.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		instruments: instruments,
		logger:      logger,
	}
}

func (h *PaymentMethodHandler) CreateSetupIntent(c echo.Context) error {
	result, err := h.instruments.CreateSetupIntent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PaymentMethodHandler) ListPaymentMethods(c echo.Context) error {
	methods, err := h.instruments.ListPaymentMethods(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"payment_methods": methods})
}

func (h *PaymentMethodHandler) DetachPaymentMethod(c echo.Context) error {
	paymentMethodID := c.Param("pm_id")
	if err := h.instruments.DetachPaymentMethod(c.Request().Context(), paymentMethodID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":            "detached",
		"payment_method_id": paymentMethodID,
	})
}
