package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/application/service"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/config"
	infraBilling "github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/infrastructure/billing"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/infrastructure/database"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/infrastructure/repository"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/presentation/http/handler"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/presentation/http/routes"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/email"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/logger"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog := logger.Setup(cfg.App.Env, cfg.App.Debug)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	productRepo := repository.NewProductRepository(db)
	rawMaterialRepo := repository.NewRawMaterialRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	bankAccountRepo := repository.NewBankAccountRepository(db)
	receivableRepo := repository.NewReceivableRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Purge idempotency keys whose replay window has passed.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				appLog.WithError(err).Warn("idempotency key cleanup failed")
			}
		}
	}()

	// Initialize billing provider client
	billingClient := infraBilling.NewClient(cfg.Billing.BaseURL, cfg.Billing.APIKey, cfg.Billing.Timeout)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.Host,
		SMTPPort:     cfg.Email.Port,
		SMTPUsername: cfg.Email.Username,
		SMTPPassword: cfg.Email.Password,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.From,
	})

	// Initialize services
	settlementCfg := service.DefaultSettlementConfig()
	settlementCfg.Fees.CreditCardPercent = decimal.NewFromFloat(cfg.Settlement.CreditCardFeePercent)
	settlementCfg.Fees.DebitCardPercent = decimal.NewFromFloat(cfg.Settlement.DebitCardFeePercent)
	settlementCfg.Fees.BoletoFlatFee = cfg.Settlement.BoletoFlatFee
	settlementCfg.DebitSettleFeePercent = cfg.Settlement.DebitSettleFeePercent
	settlementCfg.CreditSettleFeePercent = cfg.Settlement.CreditSettleFeePercent
	settlementCfg.MinBoletoAmount = cfg.Settlement.MinBoletoAmount
	settlementCfg.BoletoDueDays = cfg.Settlement.BoletoDueDays
	settlementCfg.StoreCreditDueDays = cfg.Settlement.StoreCreditDueDays
	settlementCfg.PixTolerance = cfg.Settlement.PixTolerance
	settlementCfg.NotifyEmail = cfg.Settlement.NotifyEmail

	orderService := service.NewOrderService(
		orderRepo,
		settlementRepo,
		productRepo,
		rawMaterialRepo,
		customerRepo,
		employeeRepo,
		couponRepo,
		bankAccountRepo,
		billingClient,
		emailService,
		settlementCfg,
		appLog,
	)
	receivableService := service.NewReceivableService(receivableRepo)
	productService := service.NewProductService(productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Order:      handler.NewOrderHandler(orderService),
		Receivable: handler.NewReceivableHandler(receivableService),
		Product:    handler.NewProductHandler(productService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Log:             appLog,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	appLog.Infof("Starting %s server on port %s (%s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
