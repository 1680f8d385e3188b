package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/usecase"
)

type ExternalAccountHandler struct {
	instruments *usecase.InstrumentService
	logger      *zap.Logger
}

func NewExternalAccountHandler(instruments *usecase.InstrumentService, logger *zap.Logger) *ExternalAccountHandler {
	return &ExternalAccountHandler{
		instruments: instruments,
		logger:      logger,
	}
}

type CreateExternalAccountRequest struct {
	// Token is a bank account token produced client-side.
	Token string `json:"token" validate:"required"`
}

func (h *ExternalAccountHandler) CreateExternalAccount(c echo.Context) error {
	var req CreateExternalAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	bank, err := h.instruments.AddExternalAccount(c.Request().Context(), c.Param("id"), req.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bank)
}

func (h *ExternalAccountHandler) ListExternalAccounts(c echo.Context) error {
	banks, err := h.instruments.ListExternalAccounts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"external_accounts": banks})
}

func (h *ExternalAccountHandler) DeleteExternalAccount(c echo.Context) error {
	externalAccountID := c.Param("ext_id")
	if err := h.instruments.DeleteExternalAccount(c.Request().Context(), c.Param("id"), externalAccountID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":              "deleted",
		"external_account_id": externalAccountID,
	})
}

func (h *ExternalAccountHandler) SetDefaultExternalAccount(c echo.Context) error {
	bank, err := h.instruments.SetDefaultExternalAccount(c.Request().Context(), c.Param("id"), c.Param("ext_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bank)
}
