// Package main is the entry point for the blog-notify batch job.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shineum/blog-notify/internal/config"
	"github.com/shineum/blog-notify/internal/notify"
	"github.com/shineum/blog-notify/internal/provider"
	"github.com/shineum/blog-notify/internal/provider/graph"
	"github.com/shineum/blog-notify/internal/provider/ses"
	"github.com/shineum/blog-notify/internal/provider/smtp"
	"github.com/shineum/blog-notify/internal/provider/stdout"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	setupLogger(cfg.Logging.Level)

	// Validate before touching the filesystem or the network
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration invalid", "error", err)
		printConfigGuidance(err)
		os.Exit(1)
	}

	// Select email delivery provider
	prov := selectProvider(cfg)

	slog.Info("starting blog-notify",
		"provider", prov.Name(),
		"posts_dir", cfg.Posts.Dir,
		"window_hours", cfg.Posts.WindowHours,
	)

	// Run the pipeline once and exit. Per-post send failures are reported
	// by the run itself and do not affect the exit status.
	if err := notify.Run(context.Background(), cfg, prov); err != nil {
		if errors.Is(err, notify.ErrNoSubscribers) {
			slog.Error("no email subscribers found", "file", cfg.Subscribers.File)
			printSubscriberGuidance(cfg.Subscribers.File)
			os.Exit(1)
		}
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("blog-notify completed")
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// selectProvider builds the email delivery backend named by the
// configuration. Validation has already confirmed the required fields.
func selectProvider(cfg *config.Config) provider.Provider {
	switch cfg.Provider {
	case "smtp":
		return smtp.New(smtp.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})

	case "ses":
		p, err := ses.New(context.Background(), ses.ProviderConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
			Sender:          cfg.SES.Sender,
		})
		if err != nil {
			slog.Error("failed to create SES provider", "error", err)
			os.Exit(1)
		}
		return p

	case "graph":
		return graph.New(graph.ProviderConfig{
			TenantID:     cfg.Graph.TenantID,
			ClientID:     cfg.Graph.ClientID,
			ClientSecret: cfg.Graph.ClientSecret,
			Sender:       cfg.Graph.Sender,
		})

	case "stdout":
		return stdout.New()

	default:
		slog.Error("unknown provider", "provider", cfg.Provider)
		os.Exit(1)
		return nil
	}
}

// printConfigGuidance prints actionable remediation text for missing
// configuration fields.
func printConfigGuidance(err error) {
	var missing *config.MissingFieldsError
	if !errors.As(err, &missing) {
		return
	}

	fmt.Fprintln(os.Stderr, "Missing required configuration. Please set these environment variables:")
	smtpRelated := false
	for _, v := range missing.Vars {
		fmt.Fprintf(os.Stderr, "  - %s\n", v)
		if v == "SMTP_SERVER" {
			smtpRelated = true
		}
	}
	if smtpRelated {
		fmt.Fprintln(os.Stderr, "  - SMTP_PORT (optional, defaults to 587)")
	}
}

// printSubscriberGuidance prints the expected shape of the subscriber file.
func printSubscriberGuidance(path string) {
	fmt.Fprintf(os.Stderr, "Add subscriber addresses to %s\n\n", path)
	fmt.Fprintln(os.Stderr, "Example format:")
	fmt.Fprintln(os.Stderr, "emails:")
	fmt.Fprintln(os.Stderr, "  - subscriber1@example.com")
	fmt.Fprintln(os.Stderr, "  - subscriber2@example.com")
}
