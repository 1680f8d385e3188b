package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/connect-demo/internal/adapter/handler/http"
	"github.com/wekeepgrowing/connect-demo/internal/adapter/metrics"
	"github.com/wekeepgrowing/connect-demo/internal/config"
	"github.com/wekeepgrowing/connect-demo/internal/domain/provider"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
	"github.com/wekeepgrowing/connect-demo/internal/usecase"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	accounts repository.AccountRepository
	provider provider.Provider
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, logger *zap.Logger, accounts repository.AccountRepository, prov provider.Provider) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		accounts: accounts,
		provider: prov,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	httpMetrics := metrics.NewHTTPMetrics()
	s.echo.Use(httpMetrics.Middleware())

	// Liveness probe
	s.echo.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "up",
		})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize services
	correlation := usecase.NewCorrelationService(s.accounts, s.provider, s.logger)
	accountService := usecase.NewAccountService(s.accounts, s.provider, s.config.Service.DefaultCountry, s.logger)
	paymentService := usecase.NewPaymentService(
		s.accounts,
		correlation,
		s.provider,
		s.config.Service.ApplicationFeeBps,
		s.config.Service.DefaultCurrency,
		s.logger,
	)
	instrumentService := usecase.NewInstrumentService(s.accounts, correlation, s.provider, s.logger)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, paymentService, s.logger)
	transactionHandler := handlers.NewTransactionHandler(paymentService, httpMetrics, s.logger)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(instrumentService, s.logger)
	externalAccountHandler := handlers.NewExternalAccountHandler(instrumentService, s.logger)

	api := s.echo.Group("/api")

	// Accounts
	accounts := api.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.POST("/:id/upgrade-to-recipient", accountHandler.UpgradeToRecipient)
	accounts.POST("/:id/onboarding-link", accountHandler.CreateOnboardingLink)
	accounts.POST("/:id/send-money", accountHandler.SendMoney)

	// Payment methods
	accounts.POST("/:id/payment-methods/setup-intent", paymentMethodHandler.CreateSetupIntent)
	accounts.GET("/:id/payment-methods", paymentMethodHandler.ListPaymentMethods)
	accounts.DELETE("/:id/payment-methods/:pm_id", paymentMethodHandler.DetachPaymentMethod)

	// Bank external accounts
	accounts.POST("/:id/external-accounts", externalAccountHandler.CreateExternalAccount)
	accounts.GET("/:id/external-accounts", externalAccountHandler.ListExternalAccounts)
	accounts.DELETE("/:id/external-accounts/:ext_id", externalAccountHandler.DeleteExternalAccount)
	accounts.PATCH("/:id/external-accounts/:ext_id/default", externalAccountHandler.SetDefaultExternalAccount)

	// Transactions
	transactions := api.Group("/transactions")
	transactions.POST("/:id/pay-user", transactionHandler.PayUser)
	transactions.POST("/:id/create-payment-intent", transactionHandler.CreatePaymentIntent)
}
