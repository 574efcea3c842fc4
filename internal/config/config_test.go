package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.Token != DefaultToken {
		t.Fatalf("expected default token %q, got %q", DefaultToken, cfg.Token)
	}
	if cfg.Addr() != ":3000" {
		t.Fatalf("expected addr \":3000\", got %q", cfg.Addr())
	}
}

func TestLoadReadsTOMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "tokengate.toml")
	contents := "port = 8443\ntoken = \"file-secret\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 8443 {
		t.Fatalf("expected port 8443, got %d", cfg.Port)
	}
	if cfg.Token != "file-secret" {
		t.Fatalf("expected token from file, got %q", cfg.Token)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level from file, got %q", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN", "env-secret")

	path := filepath.Join(t.TempDir(), "tokengate.toml")
	if err := os.WriteFile(path, []byte("port = 8080\ntoken = \"file-secret\"\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("expected env port 9090, got %d", cfg.Port)
	}
	if cfg.Token != "env-secret" {
		t.Fatalf("expected env token, got %q", cfg.Token)
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "70000")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRequiresPairedTLSFiles(t *testing.T) {
	cfg := Default()
	cfg.TLSCert = "/tmp/cert.pem"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when only one TLS file is set")
	}

	cfg.TLSKey = "/tmp/key.pem"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected paired TLS files to validate, got %v", err)
	}
}

func TestValidateRequiresSomeSecret(t *testing.T) {
	cfg := Default()
	cfg.Token = ""
	cfg.TokenHash = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when no secret is configured")
	}

	cfg.TokenHash = "pbkdf2$sha256$120000$c2FsdA$a2V5"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected hashed secret to validate, got %v", err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "TOKEN", "TOKEN_HASH",
		"TOKENGATE_LOG_LEVEL", "TOKENGATE_LOG_FORMAT",
		"TOKENGATE_TLS_CERT", "TOKENGATE_TLS_KEY",
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}
