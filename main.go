package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ComandaApp/app/api"
	"ComandaApp/app/config"
	"ComandaApp/app/database"
	"ComandaApp/app/services"
	"ComandaApp/app/webhook"
	"ComandaApp/app/websocket"
)

func main() {
	// Load .env file if present (ignore error - file is optional)
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := services.NewLoggerService(cfg.DataPath)
	defer logger.Close()
	logger.LogInfo("Starting ComandaApp for %s", cfg.RestaurantName)

	if err := database.Initialize(cfg.DatabaseURL, cfg.DataPath); err != nil {
		log.Fatalf("Database error: %v", err)
	}

	backend := webhook.NewClient(cfg.BackendURL, cfg.BackendToken)

	// WebSocket hub for the live admin dashboards
	wsServer := websocket.NewServer(":" + cfg.WSPort)
	go func() {
		if err := wsServer.Start(); err != nil {
			logger.LogError("WebSocket server stopped: %v", err)
		}
	}()

	// Services
	menuSvc := services.NewMenuService(backend, cfg.CacheTTL, nil)
	deliverySvc := services.NewDeliveryService(backend, cfg.CacheTTL, nil)
	clientSvc := services.NewClientService(backend)
	orderSvc := services.NewOrderService(backend, deliverySvc, wsServer)
	salesSvc := services.NewSalesService(backend)
	dictationSvc := services.NewDictationService(backend)
	printSvc := services.NewPrintService(
		orderSvc,
		database.GetDB(),
		cfg.PaperCols,
		cfg.RestaurantName,
		cfg.RestaurantAddress,
		cfg.RestaurantPhone,
		cfg.TrackingBaseURL,
	)
	prefsSvc := services.NewPrefsService(database.GetDB())

	// Background order polling
	pollWorker := services.NewPollWorker(orderSvc, logger, cfg.PollInterval)
	pollWorker.Start()

	router := api.NewRouter(&api.Handlers{
		Menu:       menuSvc,
		Delivery:   deliverySvc,
		Clients:    clientSvc,
		Orders:     orderSvc,
		Sales:      salesSvc,
		Dictation:  dictationSvc,
		Print:      printSvc,
		Prefs:      prefsSvc,
		AdminToken: cfg.AdminToken,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.LogInfo("HTTP API listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.LogInfo("Shutting down...")
	pollWorker.Stop()
	wsServer.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.LogError("HTTP shutdown error: %v", err)
	}
}
