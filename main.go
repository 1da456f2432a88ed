// File: tripdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripdesk/config"
	"tripdesk/cron"
	"tripdesk/database"
	itemRepoPkg "tripdesk/database/repository/item"
	ticketRepoPkg "tripdesk/database/repository/ticket"
	userRepoPkg "tripdesk/database/repository/user"
	"tripdesk/handlers"
	"tripdesk/middleware"
	"tripdesk/models"
	"tripdesk/routes"
	"tripdesk/services/aggregator"
	"tripdesk/services/item"
	"tripdesk/services/payment"
	"tripdesk/services/ticket"
	"tripdesk/services/user"
	"tripdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	itemRepo := itemRepoPkg.NewMongoItemRepo()
	ticketRepo := ticketRepoPkg.NewMongoTicketRepo()

	// Partner aggregation core.
	registry := aggregator.NewRegistry()
	partnerClient := aggregator.NewHTTPPartnerClient(logger)
	responseCache := aggregator.NewResponseCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.AggregationCacheTTLSeconds)*time.Second,
		logger,
	)
	engine := aggregator.NewEngine(registry, partnerClient, responseCache, logger)

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	itemService := &item.DefaultItemService{Repo: itemRepo}

	gateways := map[string]payment.Gateway{
		models.GatewayStripe: payment.NewStripeGateway(logger),
		models.GatewayAuthorizeNet: payment.NewAuthorizeNetGateway(
			config.AppConfig.AuthNetEndpoint,
			config.AppConfig.AuthNetLoginID,
			config.AppConfig.AuthNetTransKey,
			logger,
		),
	}
	ticketService := &ticket.DefaultTicketService{
		Repo:     ticketRepo,
		Items:    itemRepo,
		Gateways: gateways,
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		FlightUsers: handlers.NewFlightUsersHandler(engine),
		Websites:    handlers.NewWebsitesHandler(engine),
		Health:      handlers.NewHealthHandler(engine),
		Users:       handlers.NewUserHandler(userService),
		Items:       handlers.NewItemHandler(itemService),
		Tickets:     handlers.NewTicketHandler(ticketService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background dependency monitoring and cache warming.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
		engine.PartnerCounts,
	)
	cron.InitAggregationWarmer(engine)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
