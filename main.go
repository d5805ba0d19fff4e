package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shootscout/clients/geocode"
	"shootscout/clients/schedule"
	"shootscout/config"
	"shootscout/handlers"
	"shootscout/middleware"
	"shootscout/routes"
	"shootscout/services/resolver"
	"shootscout/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	cacheClient := utils.GetCacheClient()
	utils.StartHealthMonitor(cacheClient)

	// External collaborators.
	scheduleClient := schedule.New(
		config.AppConfig.BookingAPIBase,
		time.Duration(config.AppConfig.BookingAPITimeout)*time.Second,
	)
	geocodeClient := geocode.New(
		config.AppConfig.GeocodeAPIBase,
		time.Duration(config.AppConfig.GeocodeAPITimeout)*time.Second,
		cacheClient,
		time.Duration(config.AppConfig.GeocodeCacheTTLMins)*time.Minute,
	)

	engine := resolver.New(scheduleClient, scheduleClient, scheduleClient, geocodeClient)
	resolveHandler := handlers.NewResolveHandler(engine)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterResolveRoutes(router, resolveHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	engine.Cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
}
