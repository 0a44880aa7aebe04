package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/robotopup/backend/internal/adapter/handler/http"
	"github.com/robotopup/backend/internal/config"
	"github.com/robotopup/backend/internal/infrastructure/database"
	"github.com/robotopup/backend/internal/infrastructure/telegram"
	"github.com/robotopup/backend/internal/logger"
	"github.com/robotopup/backend/internal/usecase"
)

// Server wires the HTTP surface: middleware, handlers and routes.
type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
	bot    *telegram.Client
}

// requestValidator adapts go-playground/validator to Echo's Validator hook.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, repos *database.Repositories, bot *telegram.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORS.AllowOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: log,
		echo:   e,
		repos:  repos,
		bot:    bot,
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
	location, err := time.LoadLocation(s.config.Service.Timezone)
	if err != nil {
		s.logger.Warn("Unknown timezone, falling back to UTC",
			zap.String("timezone", s.config.Service.Timezone))
		location = time.UTC
	}

	paymentService := usecase.NewPaymentService(
		s.repos.Payment, s.repos.Order, s.bot, s.logger, s.config.Payment.WalletNumber)
	productService := usecase.NewProductService(s.repos.Product, s.repos.Category, s.logger)
	smsService := usecase.NewSmsService(s.repos.Sms, s.logger)
	commandService := usecase.NewBotCommandService(paymentService, s.bot, location, s.logger)

	paymentHandler := handlers.NewPaymentHandler(paymentService, s.logger)
	productHandler := handlers.NewProductHandler(productService, s.logger)
	smsHandler := handlers.NewSmsHandler(smsService, s.logger)
	telegramHandler := handlers.NewTelegramHandler(commandService, paymentService, s.bot, s.logger)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Payment lifecycle
	api.POST("/payments/verify", paymentHandler.VerifyPayment)
	api.POST("/payments/:id/deliver", paymentHandler.Deliver)
	api.GET("/payments", paymentHandler.List)
	api.GET("/payments/status/:transactionId", paymentHandler.Status)

	// Storefront catalog
	api.GET("/products", productHandler.ListProducts)
	api.POST("/products", productHandler.CreateProduct)
	api.POST("/products/seed", productHandler.SeedCatalog)
	api.GET("/products/category/:categoryId", productHandler.ListProductsByCategory)
	api.GET("/products/:id", productHandler.GetProduct)
	api.PUT("/products/:id", productHandler.UpdateProduct)
	api.DELETE("/products/:id", productHandler.DeleteProduct)
	api.GET("/categories", productHandler.ListCategories)
	api.POST("/categories", productHandler.CreateCategory)
	api.PUT("/categories/:id", productHandler.UpdateCategory)
	api.DELETE("/categories/:id", productHandler.DeleteCategory)

	// SMS intake and operator browsing
	api.POST("/sms/receive", smsHandler.Receive)
	api.GET("/sms", smsHandler.List)
	api.GET("/sms/stats", smsHandler.Stats)
	api.GET("/sms/search", smsHandler.Search)
	api.GET("/sms/:id", smsHandler.Get)
	api.PATCH("/sms/:id/status", smsHandler.UpdateStatus)
	api.DELETE("/sms/:id", smsHandler.Delete)
	api.DELETE("/sms", smsHandler.ClearAll)

	// Operator channel
	api.POST("/telegram/webhook", telegramHandler.Webhook)
	api.POST("/telegram/mark-delivered/:transactionId", telegramHandler.MarkDelivered)
	api.POST("/telegram/mark-failed/:transactionId", telegramHandler.MarkFailed)
	api.POST("/telegram/set-webhook", telegramHandler.SetWebhook)
	api.GET("/telegram/webhook-info", telegramHandler.WebhookInfo)
	api.GET("/telegram/me", telegramHandler.BotInfo)
}
