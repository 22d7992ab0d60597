package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/notifyd/notifyd/internal/api"
	"github.com/notifyd/notifyd/internal/build"
	"github.com/notifyd/notifyd/internal/config"
	"github.com/notifyd/notifyd/internal/eventbus"
	"github.com/notifyd/notifyd/internal/logger"
	"github.com/notifyd/notifyd/internal/notification"
	"github.com/notifyd/notifyd/internal/retention"
	"github.com/notifyd/notifyd/internal/server"
	"github.com/notifyd/notifyd/internal/service"
	"github.com/notifyd/notifyd/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the notifyd HTTP API server.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	sysLogger.Info("notifyd starting",
		slog.Int("port", cfg.Port),
		slog.String("data_dir", cfg.DataDir),
		slog.String("relay_url", cfg.NotificationServiceURL),
		slog.String("version", build.Version),
	)

	seed, err := storage.LoadSeedUsers(cfg.SeedFile)
	if err != nil {
		return err
	}
	userStore := storage.NewMemoryUserStore(seed)

	db, err := storage.NewSQLiteDB(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening delivery log database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			sysLogger.Warn("closing database", "error", cerr)
		}
	}()
	deliveryStore := storage.NewSQLiteDeliveryStore(db)

	bus := eventbus.New(0, sysLogger)
	defer bus.Close()
	service.NewDeliveryRecorder(deliveryStore, sysLogger).Register(bus)

	sender := notification.NewSender(senderConfig(cfg))

	userSvc := service.NewUserService(userStore, sysLogger)
	dispatchSvc := service.NewDispatchService(userStore, deliveryStore, sender, bus, sysLogger)

	janitor, err := retention.New(deliveryStore, time.Duration(cfg.LogRetentionDays)*24*time.Hour, sysLogger)
	if err != nil {
		return err
	}
	if err := janitor.Start(); err != nil {
		return err
	}
	defer janitor.Stop()

	apiSrv := api.New(userSvc, dispatchSvc, cfg.AuthToken, sysLogger)
	srv := server.New(apiSrv, cfg.Port, sysLogger)

	fmt.Fprintf(os.Stderr, "notifyd %s listening on http://localhost:%d\n", build.Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  POST /notifications/send  → dispatch a notification\n")
	fmt.Fprintf(os.Stderr, "  GET  /users               → list user preferences\n")
	fmt.Fprintf(os.Stderr, "  GET  /health              → health check\n")

	return srv.Run(ctx)
}

// senderConfig maps app config to the notification sender config, enabling
// the direct SMTP path only when an SMTP host is configured.
func senderConfig(cfg *config.AppConfig) notification.Config {
	nc := notification.Config{
		RelayURL: cfg.NotificationServiceURL,
		Timeout:  cfg.SendTimeout,
	}
	if cfg.SMTPHost != "" {
		nc.SMTP = &notification.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			FromAddr:   cfg.SMTPFrom,
			Encryption: cfg.SMTPEncryption,
		}
	}
	return nc
}
