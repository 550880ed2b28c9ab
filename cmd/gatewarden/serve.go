package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/gatewarden/internal/config"
	"github.com/groblegark/gatewarden/internal/events"
	"github.com/groblegark/gatewarden/internal/gate"
	"github.com/groblegark/gatewarden/internal/questions"
	"github.com/groblegark/gatewarden/internal/server"
	"github.com/groblegark/gatewarden/internal/store"
	"github.com/groblegark/gatewarden/internal/store/memory"
	"github.com/groblegark/gatewarden/internal/store/postgres"
	"github.com/groblegark/gatewarden/internal/transport"
	"github.com/groblegark/gatewarden/internal/transport/telegram"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the gatewarden server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create a client connection.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Pick the gate store. Without a database, gates do not survive
		// restarts.
		var st store.Store
		if cfg.DatabaseURL != "" {
			pg, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			st = pg
			logger.Info("postgres store connected")
		} else {
			st = memory.New()
			logger.Warn("no GATEWARDEN_DATABASE_URL set, using in-memory store (gates lost on restart)")
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (GATEWARDEN_NATS_URL not set)")
		}

		// Load the question bank.
		ctx := context.Background()
		var source questions.Source
		if cfg.QuestionsS3Bucket != "" {
			source, err = questions.NewS3Source(ctx, cfg.QuestionsS3Bucket, cfg.QuestionsS3Key, cfg.QuestionsS3Region, cfg.QuestionsS3Endpoint)
			if err != nil {
				publisher.Close()
				st.Close()
				return err
			}
			logger.Info("question source: S3", "bucket", cfg.QuestionsS3Bucket, "key", cfg.QuestionsS3Key)
		} else {
			source = questions.FileSource{Path: cfg.QuestionsFile}
			logger.Info("question source: file", "path", cfg.QuestionsFile)
		}
		bank, err := questions.Load(ctx, source)
		if err != nil {
			publisher.Close()
			st.Close()
			return fmt.Errorf("load questions: %w", err)
		}
		logger.Info("question bank loaded", "questions", bank.Len())

		// Connect the chat transport.
		var tr transport.Transport
		var tgTransport *telegram.Transport
		if cfg.TelegramToken != "" {
			tgTransport, err = telegram.New(cfg.TelegramToken)
			if err != nil {
				publisher.Close()
				st.Close()
				return err
			}
			tr = tgTransport
			logger.Info("telegram transport connected")
		} else {
			tr = transport.Noop{}
			logger.Warn("no GATEWARDEN_TELEGRAM_TOKEN set, chat actions are no-ops (HTTP ingest only)")
		}

		// Build the gate engine and recover persisted gates.
		policy := gate.Policy{
			AttemptBudget: cfg.AttemptBudget,
			AnswerTimeout: cfg.AnswerTimeout,
			RerollOnRetry: cfg.RerollOnRetry,
		}
		engine := gate.New(policy, bank, st, tr, publisher, logger)
		if err := engine.Start(ctx); err != nil {
			publisher.Close()
			st.Close()
			return fmt.Errorf("recover gates: %w", err)
		}

		// Start the Telegram poller.
		pollCtx, pollCancel := context.WithCancel(ctx)
		defer pollCancel()
		if tgTransport != nil {
			poller, err := telegram.NewPoller(tgTransport, engine, logger)
			if err != nil {
				publisher.Close()
				st.Close()
				return err
			}
			poller.DeleteJoinMessages = cfg.DeleteJoinMessages
			go poller.Run(pollCtx)
			logger.Info("telegram poller started", "delete_join_messages", cfg.DeleteJoinMessages)
		}

		// Start the HTTP server.
		gateServer := server.NewGateServer(engine, st, bank, source, publisher, logger)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: gateServer.NewHTTPHandler(cfg.AuthToken),
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		logger.Info("gatewarden started",
			"http_addr", cfg.HTTPAddr,
			"attempt_budget", cfg.AttemptBudget,
			"answer_timeout", cfg.AnswerTimeout,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		pollCancel()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		// Stop deadline timers; persisted deadlines are re-armed on restart.
		engine.Stop()
		logger.Info("gate engine stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}
		logger.Info("shutdown complete")
		return nil
	},
}
