package main

import (
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/logging"
	"storefront/internal/repositories"
	"storefront/internal/services"

	_ "storefront/docs"

	"go.uber.org/zap"
)

// @title Storefront API
// @version 1.0
// @description REST backend for an e-commerce storefront.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	db, err := database.NewConnection(database.Config{Path: cfg.Database.Path})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	userRepo := repositories.NewUserRepository(db.DB)
	productRepo := repositories.NewProductRepository(db.DB)
	cartRepo := repositories.NewCartRepository(db.DB)
	ticketRepo := repositories.NewTicketRepository(db.DB)

	mailer := services.NewMailer(cfg.Mail, logger)
	userService := services.NewUserService(userRepo, cartRepo)
	authService := services.NewAuthService(userRepo, userService, mailer, cfg.JWT, cfg.Mail.FrontendURL, logger)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	purchaseService := services.NewPurchaseService(cartRepo, productRepo, ticketRepo)
	ticketService := services.NewTicketService(ticketRepo)

	router := handlers.NewRouter(cfg, logger, handlers.Services{
		Auth:     authService,
		User:     userService,
		Product:  productService,
		Cart:     cartService,
		Purchase: purchaseService,
		Ticket:   ticketService,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Server.Env),
	)

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
