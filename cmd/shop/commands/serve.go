package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/buket_shop/internal/httpserver"
	"github.com/Skotchmaster/buket_shop/internal/mykafka"
	"github.com/Skotchmaster/buket_shop/internal/search"
	"github.com/Skotchmaster/buket_shop/internal/service"
	"github.com/Skotchmaster/buket_shop/pkg/middleware"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not migrate the schema on startup")
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	r, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer closeDB(r.DB)

	if !skipMigrate {
		if err := r.Migrate(ctx); err != nil {
			return err
		}
	}

	var events service.EventPublisher
	if cfg.EventsEnabled() {
		producer, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka_close_error", "error", err)
			}
		}()
		events = producer
	} else {
		logger.Info("events_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var searcher service.ProductSearcher
	if cfg.SearchEnabled() {
		client, err := search.NewClient(ctx, cfg)
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			searcher = client
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Use(middleware.Common(logger)...)

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r, Searcher: searcher}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: events, Topic: cfg.KafkaCartTopic}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Events: events, Topic: cfg.KafkaOrderTopic}},
		Ready:          r.Ping,
		StaticDir:      cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_listening", "addr", srv.Addr, "static_dir", cfg.StaticDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-stop.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	logger.Info("server_stopped")
	return nil
}
