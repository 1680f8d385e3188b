package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/usecase"
)

type AccountHandler struct {
	accounts *usecase.AccountService
	payments *usecase.PaymentService
	logger   *zap.Logger
}

func NewAccountHandler(accounts *usecase.AccountService, payments *usecase.PaymentService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		payments: payments,
		logger:   logger,
	}
}

type CreateAccountRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Country string `json:"country"`
}

type OnboardingLinkRequest struct {
	RefreshURL string `json:"refresh_url" validate:"required,url"`
	ReturnURL  string `json:"return_url" validate:"required,url"`
}

type SendMoneyRequest struct {
	Amount               int64  `json:"amount" validate:"required,gt=0"`
	Currency             string `json:"currency"`
	DestinationAccountID string `json:"destination_account_id" validate:"required"`
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	h.logger.Info("creating account",
		zap.String("name", req.Name),
		zap.String("email", req.Email))

	view, err := h.accounts.Create(c.Request().Context(), req.Name, req.Email, req.Country)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	views, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"accounts": views})
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	detail, err := h.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	result, err := h.accounts.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AccountHandler) UpgradeToRecipient(c echo.Context) error {
	result, err := h.accounts.UpgradeToRecipient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AccountHandler) CreateOnboardingLink(c echo.Context) error {
	var req OnboardingLinkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.accounts.OnboardingLink(c.Request().Context(), c.Param("id"), req.RefreshURL, req.ReturnURL)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AccountHandler) SendMoney(c echo.Context) error {
	var req SendMoneyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	result, err := h.payments.SendMoney(c.Request().Context(), c.Param("id"), &usecase.SendMoneyInput{
		Amount:               req.Amount,
		Currency:             req.Currency,
		DestinationAccountID: req.DestinationAccountID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
