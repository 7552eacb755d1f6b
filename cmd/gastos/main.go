package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rogerio1982/app-gastos/internal/backend"
	"github.com/rogerio1982/app-gastos/internal/bot"
	"github.com/rogerio1982/app-gastos/internal/cli"
	"github.com/rogerio1982/app-gastos/internal/events"
	apphttp "github.com/rogerio1982/app-gastos/internal/http"
	"github.com/rogerio1982/app-gastos/internal/interpreter"
	applog "github.com/rogerio1982/app-gastos/internal/log"
	"github.com/rogerio1982/app-gastos/internal/report"
	"github.com/rogerio1982/app-gastos/internal/services"
	"github.com/rogerio1982/app-gastos/internal/telegram"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ledger store
	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}
	if err := backendConfig.Validate(); err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backendConfig)
	if err != nil {
		logger.Error("Failed to initialize ledger backend",
			applog.FieldError, err,
			applog.FieldBackend, cfg.LedgerBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	// Event publishing (optional)
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize events client, continuing without publishing",
				applog.FieldError, err)
		} else {
			defer func() {
				if err := eventsClient.Close(); err != nil {
					logger.Error("Events client close failed", applog.FieldError, err)
				}
			}()
			publisher = eventsClient
			logger.Info("Initialized events client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	// Interpretation fallback (optional)
	var extractor interpreter.Extractor
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		extractor = interpreter.NewAnthropicExtractor()
		logger.Info("Initialized model-based extraction fallback")
	} else {
		logger.Warn("ANTHROPIC_API_KEY not set, unmatched messages will not be interpreted")
	}

	expenses := services.NewExpenseService(result.Store, publisher)
	reports := report.NewBuilder(result.Store)
	handler := bot.NewHandler(interpreter.New(extractor), expenses, reports)
	sender := telegram.NewSender(cfg.TelegramBotToken, cfg.TelegramAPIBaseURL)

	srv := apphttp.NewServer(":"+cfg.Port, handler, sender, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting gastos server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.LedgerBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
