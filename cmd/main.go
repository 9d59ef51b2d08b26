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

	"github.com/senyabanana/brief-responses-frontend/internal/content"
	"github.com/senyabanana/brief-responses-frontend/internal/handlers"
	"github.com/senyabanana/brief-responses-frontend/internal/notify"
	"github.com/senyabanana/brief-responses-frontend/internal/repository"
	"github.com/senyabanana/brief-responses-frontend/internal/router"
	"github.com/senyabanana/brief-responses-frontend/internal/router/config"
	"github.com/senyabanana/brief-responses-frontend/internal/services"
	"github.com/senyabanana/brief-responses-frontend/internal/session"
	"github.com/senyabanana/brief-responses-frontend/internal/telemetry"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	serve := newServeCommand(&configPath)
	cmd := &cobra.Command{
		Use:           "brief-responses-frontend",
		Short:         "Supplier pages for responding to Digital Marketplace opportunities",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory with app.env")

	cmd.AddCommand(serve)
	cmd.AddCommand(newManifestsCommand())
	return cmd
}

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("cannot load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.Development() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("app", cfg.AppName), slog.String("environment", cfg.Environment))
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.AppName, cfg.Environment, cfg.OtelEndpoint)
	if err != nil {
		return fmt.Errorf("cannot set up tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	registry, err := content.Load()
	if err != nil {
		return fmt.Errorf("cannot load content manifests: %w", err)
	}

	var notifier notify.Notifier
	if cfg.NotifyAPIKey == "" {
		logger.Warn("DM_NOTIFY_API_KEY is not set, emails will only be logged")
		notifier = notify.LogNotifier{Logger: logger}
	} else {
		client, err := notify.NewClient(cfg.NotifyAPIURL, cfg.NotifyAPIKey, cfg.Timeout)
		if err != nil {
			return fmt.Errorf("cannot create notify client: %w", err)
		}
		notifier = client
	}

	apiClient := repository.NewClient(cfg.DataAPIURL, cfg.DataAPIAuthToken, cfg.Timeout)
	briefRepo := repository.NewAPIBriefRepository(apiClient)
	frameworkRepo := repository.NewAPIFrameworkRepository(apiClient)
	serviceRepo := repository.NewAPIServiceRepository(apiClient)
	responseRepo := repository.NewAPIBriefResponseRepository(apiClient)
	auditRepo := repository.NewAPIAuditRepository(apiClient)

	eligibility := services.NewEligibilityService(briefRepo, serviceRepo)
	responseService := services.NewBriefResponseService(briefRepo, frameworkRepo, serviceRepo, responseRepo, eligibility, registry)
	applicationService := services.NewApplicationService(briefRepo, responseRepo, eligibility, registry)
	clarificationService := services.NewClarificationService(briefRepo, auditRepo, notifier, eligibility,
		services.ClarificationTemplates{
			Question:     cfg.ClarificationTemplateID,
			Confirmation: cfg.ClarificationConfirmationTemplate,
		},
		cfg.BaseURL,
	)
	opportunitiesService := services.NewOpportunitiesService(briefRepo, frameworkRepo, responseRepo)

	base := handlers.NewBase(logger, cfg.Timeout, cfg.StaticURL)
	routes := router.InitRoutes(router.Handlers{
		Responses:      handlers.NewBriefResponseHandler(base, responseService),
		Applications:   handlers.NewApplicationHandler(base, applicationService),
		Clarifications: handlers.NewClarificationHandler(base, clarificationService),
		Opportunities:  handlers.NewOpportunitiesHandler(base, opportunitiesService),
	}, session.NewManager(cfg.SessionSecret, cfg.SessionCookie, cfg.LoginURL, logger), logger)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           routes,
		ReadHeaderTimeout: cfg.Timeout,
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("server is listening", slog.String("address", cfg.ServerAddress))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
