// Command server starts the tokengate HTTP service.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tokengate/internal/api"
	"tokengate/internal/auth"
	"tokengate/internal/config"
	"tokengate/internal/observability/logging"
	"tokengate/internal/observability/metrics"
	"tokengate/internal/server"
)

type options struct {
	configPath string
	port       int
	token      string
	tokenHash  string
	logLevel   string
	logFormat  string
	tlsCert    string
	tlsKey     string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to TOML config file")
	flag.IntVar(&opts.port, "port", 0, "HTTP listen port")
	flag.StringVar(&opts.token, "token", "", "expected bearer token")
	flag.StringVar(&opts.tokenHash, "token-hash", "", "pbkdf2 hash of the expected bearer token (overrides -token)")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFormat, "log-format", "", "log format (json or text)")
	flag.StringVar(&opts.tlsCert, "tls-cert", "", "path to TLS certificate file")
	flag.StringVar(&opts.tlsKey, "tls-key", "", "path to TLS private key file")
	flag.Parse()
	return opts
}

// resolveConfig layers the command-line options over the loaded configuration
// so the final precedence is defaults, then file, then environment, then
// flags.
func resolveConfig(opts options) (config.Config, error) {
	cfg, err := config.Load(firstNonEmpty(opts.configPath, os.Getenv("TOKENGATE_CONFIG")))
	if err != nil {
		return config.Config{}, err
	}
	if opts.port > 0 {
		cfg.Port = opts.port
	}
	if value := strings.TrimSpace(opts.token); value != "" {
		cfg.Token = value
	}
	if value := strings.TrimSpace(opts.tokenHash); value != "" {
		cfg.TokenHash = value
	}
	if value := strings.TrimSpace(opts.logLevel); value != "" {
		cfg.LogLevel = value
	}
	if value := strings.TrimSpace(opts.logFormat); value != "" {
		cfg.LogFormat = value
	}
	if value := strings.TrimSpace(opts.tlsCert); value != "" {
		cfg.TLSCert = value
	}
	if value := strings.TrimSpace(opts.tlsKey); value != "" {
		cfg.TLSKey = value
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	opts := parseFlags()

	cfg, err := resolveConfig(opts)
	if err != nil {
		logging.New(logging.Config{}).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	verifier, err := auth.NewVerifier(cfg.Token, cfg.TokenHash)
	if err != nil {
		logger.Error("failed to configure token verification", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(api.NewHandler(), server.Config{
		Addr: cfg.Addr(),
		TLS: server.TLSConfig{
			CertFile: cfg.TLSCert,
			KeyFile:  cfg.TLSKey,
		},
		Logger:   logging.WithComponent(logger, "http"),
		Metrics:  metrics.Default(),
		Verifier: verifier,
	})
	if err != nil {
		logger.Error("failed to initialise server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("tokengate listening", "addr", cfg.Addr())
	if cfg.TLSCert != "" && cfg.TLSKey != "" {
		logger.Info("TLS enabled", "cert_file", cfg.TLSCert)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}
