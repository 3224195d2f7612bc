package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vantagecrm/crm-backend/internal/data/db"
	"github.com/vantagecrm/crm-backend/internal/data/repos"
	"github.com/vantagecrm/crm-backend/internal/http/handlers"
	"github.com/vantagecrm/crm-backend/internal/observability"
	"github.com/vantagecrm/crm-backend/internal/platform/envutil"
	"github.com/vantagecrm/crm-backend/internal/platform/logger"
	"github.com/vantagecrm/crm-backend/internal/server"
	"github.com/vantagecrm/crm-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: envutil.GetEnv("OTEL_SERVICE_NAME", "crm-backend", log),
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		Version:     envutil.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(ctx); err != nil {
				log.Warn("OTel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	customerRepo := repos.NewCustomerRepo(thePG, log)
	contactRepo := repos.NewContactRepo(thePG, log)
	opportunityRepo := repos.NewOpportunityRepo(thePG, log)
	activityRepo := repos.NewActivityRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	customerService := services.NewCustomerService(thePG, log, customerRepo, contactRepo, opportunityRepo)
	contactService := services.NewContactService(thePG, log, contactRepo, customerRepo)
	opportunityService := services.NewOpportunityService(thePG, log, opportunityRepo, customerRepo)
	activityService := services.NewActivityService(thePG, log, activityRepo, customerRepo, contactRepo, opportunityRepo)
	productService := services.NewProductService(thePG, log, productRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	healthHandler := handlers.NewHealthHandler()
	customerHandler := handlers.NewCustomerHandler(log, customerService)
	contactHandler := handlers.NewContactHandler(log, contactService)
	opportunityHandler := handlers.NewOpportunityHandler(log, opportunityService)
	activityHandler := handlers.NewActivityHandler(log, activityService)
	productHandler := handlers.NewProductHandler(log, productService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                log,
		ServiceName:        envutil.GetEnv("OTEL_SERVICE_NAME", "crm-backend", log),
		HealthHandler:      healthHandler,
		CustomerHandler:    customerHandler,
		ContactHandler:     contactHandler,
		OpportunityHandler: opportunityHandler,
		ActivityHandler:    activityHandler,
		ProductHandler:     productHandler,
	})

	port := envutil.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
