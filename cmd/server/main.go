package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ryanhu021/splitr/internal/config"
	"github.com/ryanhu021/splitr/internal/metrics"
	splitrmw "github.com/ryanhu021/splitr/internal/middleware"
	"github.com/ryanhu021/splitr/internal/recognition"
	"github.com/ryanhu021/splitr/internal/scan"
	"github.com/ryanhu021/splitr/internal/scanarchive"
	"github.com/ryanhu021/splitr/internal/service"
	"github.com/ryanhu021/splitr/internal/storage/sqlite"
	"github.com/ryanhu021/splitr/pkg/api/apiconnect"
	"github.com/ryanhu021/splitr/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(cfg.LogLevel())

	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.DBPath)

	archive, err := scanarchive.Open(cfg.Storage.ArchivePath)
	if err != nil {
		slog.Error("Failed to open scan archive", "error", err)
		os.Exit(1)
	}
	defer archive.Close()

	recognizer, err := recognition.New(cfg.RecognitionOptions())
	if err != nil {
		slog.Error("Failed to initialize recognizer", "error", err)
		os.Exit(1)
	}
	defer recognizer.Close()
	slog.Info("Recognizer ready", "backend", recognizer.Name(), "strategy", cfg.Strategy())

	m := metrics.New()

	scanner := scan.NewProcessor(recognizer, store,
		scan.WithArchive(archive),
		scan.WithMetrics(m),
		scan.WithStrategy(cfg.Strategy()),
		scan.WithRecognitionTimeout(cfg.Recognition.Timeout),
	)

	var (
		receipts      = service.NewReceiptService(store, scanner)
		collaborators = service.NewCollaboratorService(store)
	)

	interceptors := connect.WithInterceptors(
		splitrmw.LoggingInterceptor(),
		splitrmw.MetricsInterceptor(m),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.App.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	receiptPath, receiptHandler := apiconnect.NewReceiptServiceHandler(receipts, interceptors)
	router.Handle(receiptPath+"*", receiptHandler)

	collaboratorPath, collaboratorHandler := apiconnect.NewCollaboratorServiceHandler(collaborators, interceptors)
	router.Handle(collaboratorPath+"*", collaboratorHandler)

	router.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr: addr,
		// h2c serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
