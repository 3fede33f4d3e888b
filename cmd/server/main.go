package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	appOrder "github.com/VaultPoint/LedgerShield/pkg/app/order"
	appPayment "github.com/VaultPoint/LedgerShield/pkg/app/payment"
	"github.com/VaultPoint/LedgerShield/pkg/config"
	"github.com/VaultPoint/LedgerShield/pkg/domain/telemetry"
	handlers "github.com/VaultPoint/LedgerShield/pkg/handlers/http"
	"github.com/VaultPoint/LedgerShield/pkg/infra/dispatch"
	"github.com/VaultPoint/LedgerShield/pkg/infra/httpx"
	infraLogger "github.com/VaultPoint/LedgerShield/pkg/infra/logger"
	"github.com/VaultPoint/LedgerShield/pkg/infra/repository"
	infraTelemetry "github.com/VaultPoint/LedgerShield/pkg/infra/telemetry"
	"github.com/VaultPoint/LedgerShield/pkg/infra/telemetry/kafka"
	"github.com/VaultPoint/LedgerShield/pkg/infra/telemetry/webhook"
	"github.com/VaultPoint/LedgerShield/pkg/middleware"
	"github.com/VaultPoint/LedgerShield/pkg/obfuscation"
	"github.com/VaultPoint/LedgerShield/pkg/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const webhookBreakerTimeout = 30 * time.Second

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	// Load configuration
	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	// repository
	orderRepository := repository.NewOrderMemoryRepository()
	paymentRepository := repository.NewPaymentMemoryRepository()

	// service
	orderFinder := appOrder.NewFinder(orderRepository)
	paymentFinder := appPayment.NewFinder(paymentRepository)
	paymentRefunder := appPayment.NewRefunder(logger, paymentRepository)

	// telemetry pipeline
	redactor := obfuscation.NewRedactor(&cfg.Obfuscation, logger)
	dispatcher := dispatch.NewDispatcher(logger, buildExporters(cfg, logger), 0)

	// middleware
	middlewareTransport := middleware.Transport{
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		ObfuscationMiddleware:  middleware.NewObfuscationMiddleware(logger, &cfg.Obfuscation, redactor, dispatcher),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		GetVersionHandler: handlers.NewGetVersionHandler(logger),
		// Order
		CreateOrderHandler: handlers.NewCreateOrderHandler(logger, orderRepository),
		ListOrdersHandler:  handlers.NewListOrdersHandler(logger, orderFinder),
		GetOrderHandler:    handlers.NewGetOrderHandler(logger, orderFinder),
		UpdateOrderHandler: handlers.NewUpdateOrderHandler(logger, orderRepository),
		DeleteOrderHandler: handlers.NewDeleteOrderHandler(logger, orderRepository),
		// Payment
		CreatePaymentHandler: handlers.NewCreatePaymentHandler(logger, paymentRepository),
		ListPaymentsHandler:  handlers.NewListPaymentsHandler(logger, paymentFinder),
		GetPaymentHandler:    handlers.NewGetPaymentHandler(logger, paymentFinder),
		RefundPaymentHandler: handlers.NewRefundPaymentHandler(logger, paymentRefunder),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		Config:              cfg,
		Logger:              logger,
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	// Drain queued telemetry before the process exits.
	dispatcher.Close()
	fmt.Println("server gracefully stopped")
}

func buildExporters(cfg *config.Config, logger *logrus.Logger) []telemetry.Exporter {
	locator := infraTelemetry.NewExporterLocator(
		infraTelemetry.WithExporter(webhook.ExporterName, webhook.NewWebhookExporter(
			logger,
			httpx.NewCircuitBreaker("webhook-exporter", webhookBreakerTimeout, 5),
			httpx.NewFastHTTPClient(),
		)),
		infraTelemetry.WithExporter(kafka.ExporterName, kafka.NewKafkaExporter()),
	)

	var exporters []telemetry.Exporter
	for _, exporterCfg := range cfg.Telemetry.Exporters {
		exporter, err := locator.GetExporter(exporterCfg)
		if err != nil {
			logger.WithError(err).WithField("exporter", exporterCfg.Name).
				Warn("skipping misconfigured telemetry exporter")
			continue
		}
		exporters = append(exporters, exporter)
	}
	return exporters
}
