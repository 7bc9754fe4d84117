package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coccigo/config"
	"coccigo/database"
	botrunRepoPkg "coccigo/database/repository/botrun"
	offerRepoPkg "coccigo/database/repository/offer"
	requestRepoPkg "coccigo/database/repository/request"
	userRepoPkg "coccigo/database/repository/user"
	"coccigo/handlers"
	"coccigo/middleware"
	"coccigo/routes"
	"coccigo/services/offer"
	"coccigo/services/provider"
	"coccigo/services/user"
	"coccigo/services/workflow"
	"coccigo/utils"
	"coccigo/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	offerRepo := offerRepoPkg.NewMongoOfferRepo()
	botrunRepo := botrunRepoPkg.NewMongoBotRunRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}

	offerLedger := &offer.DefaultLedger{
		Repo:  offerRepo,
		Cache: utils.GetCacheClient(),
	}

	gateway := provider.NewHTTPGateway(
		config.ProviderURLs(),
		time.Duration(config.AppConfig.ProviderTimeoutSeconds)*time.Second,
	)

	dispatcher := worker.NewAsynqDispatcher()
	defer dispatcher.Close()

	engine := &workflow.DefaultEngine{
		Requests:   requestRepo,
		Offers:     offerRepo,
		Runs:       botrunRepo,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		OfferCache: offerLedger,
	}

	worker.InitProviderWorker(engine)

	// Seed the admin account once, before the server takes traffic.
	if err := userService.EnsureAdmin(
		config.AppConfig.AdminEmail,
		config.AppConfig.AdminUsername,
		config.AppConfig.AdminPassword,
	); err != nil {
		logger.Sugar().Warnf("main: admin bootstrap skipped: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(userService),
		Request: handlers.NewRequestHandler(engine),
		Offer:   handlers.NewOfferHandler(offerLedger),
		Admin:   handlers.NewAdminHandler(userService, botrunRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
