// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/boutique-storefront/internal/config"
	"github.com/your-org/boutique-storefront/internal/domain/account"
	"github.com/your-org/boutique-storefront/internal/domain/admin"
	"github.com/your-org/boutique-storefront/internal/domain/cart"
	"github.com/your-org/boutique-storefront/internal/domain/catalog"
	"github.com/your-org/boutique-storefront/internal/domain/checkout"
	"github.com/your-org/boutique-storefront/internal/domain/customer"
	"github.com/your-org/boutique-storefront/internal/domain/site"
	"github.com/your-org/boutique-storefront/internal/domain/wishlist"
	"github.com/your-org/boutique-storefront/internal/infrastructure/backend"
	"github.com/your-org/boutique-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/boutique-storefront/internal/infrastructure/payment"
	"github.com/your-org/boutique-storefront/internal/interfaces/http"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/boutique-storefront/internal/interfaces/http/routes"
	"github.com/your-org/boutique-storefront/internal/pkg/auth"
	"github.com/your-org/boutique-storefront/internal/pkg/flow"
	"github.com/your-org/boutique-storefront/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.WithField("environment", cfg.App.Environment).
		Infof("Starting %s v%s", cfg.App.Name, cfg.App.Version)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	if err := redisClient.Health(context.Background()); err != nil {
		appLog.WithError(err).Fatal("Redis health check failed")
	}

	// Flow records are sealed at rest and shared by every gateway instance
	sealer, err := flow.NewSealer(cfg.Flow.Secret)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialise flow sealer")
	}
	flows := flow.NewManager(flow.NewRedisStore(redisClient, sealer), cfg.Flow.TTL)
	tickets := handlers.NewFlowTickets(auth.NewTicketManager(cfg), cfg)

	backendClient := backend.NewClient(cfg)

	var verifier checkout.PaymentVerifier
	if cfg.Payment.VerifyIntents {
		stripeVerifier, err := payment.NewStripeVerifier(cfg)
		if err != nil {
			appLog.WithError(err).Warn("Card payments will not be verified with the provider")
		} else {
			verifier = stripeVerifier
		}
	}

	deps := &routes.Deps{
		Services: &routes.Services{
			Catalog:   catalog.NewService(backendClient, cfg),
			Cart:      cart.NewService(backendClient),
			Wishlist:  wishlist.NewService(backendClient),
			Checkout:  checkout.NewService(backendClient, flows, verifier, cfg),
			Account:   account.NewService(backendClient, flows),
			Customer:  customer.NewService(backendClient),
			Addresses: customer.NewAddressService(backendClient),
			Admin:     admin.NewService(backendClient),
			Site:      site.NewService(backendClient),
		},
		Tickets:     tickets,
		RedisClient: redisClient,
		Config:      cfg,
	}

	// Create and start HTTP server
	server := http.NewServer(cfg, redisClient.GetClient(), backendClient, deps)

	go func() {
		if err := server.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLog.Info("Server shutdown completed")
}
