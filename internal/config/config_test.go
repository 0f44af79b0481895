package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every environment variable the config package reads so
// tests see deterministic defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"POSTS_DIR", "HOURS_THRESHOLD", "SITE_URL", "SUBSCRIBERS_FILE", "PROVIDER",
		"FROM_EMAIL", "SMTP_SERVER", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"SES_REGION", "SES_ACCESS_KEY_ID", "SES_SECRET_ACCESS_KEY", "SES_SENDER",
		"GRAPH_TENANT_ID", "GRAPH_CLIENT_ID", "GRAPH_CLIENT_SECRET", "GRAPH_SENDER",
		"LOG_LEVEL",
	}
	for _, env := range envVars {
		t.Setenv(env, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Posts.Dir != "posts" {
		t.Errorf("Posts.Dir: got %q, want %q", cfg.Posts.Dir, "posts")
	}
	if cfg.Posts.WindowHours != 24 {
		t.Errorf("Posts.WindowHours: got %d, want 24", cfg.Posts.WindowHours)
	}
	if cfg.Site.URL != "https://your-website-url.example.com" {
		t.Errorf("Site.URL: got %q, want placeholder default", cfg.Site.URL)
	}
	if cfg.Subscribers.File != "subscribers.yml" {
		t.Errorf("Subscribers.File: got %q, want %q", cfg.Subscribers.File, "subscribers.yml")
	}
	if cfg.Provider != "smtp" {
		t.Errorf("Provider: got %q, want %q", cfg.Provider, "smtp")
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port: got %d, want 587", cfg.SMTP.Port)
	}
	if cfg.SMTP.From != "" {
		t.Errorf("SMTP.From: got %q, want empty", cfg.SMTP.From)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTS_DIR", "content/posts")
	t.Setenv("HOURS_THRESHOLD", "48")
	t.Setenv("SITE_URL", "https://blog.example.com")
	t.Setenv("SUBSCRIBERS_FILE", "conf/subs.yml")
	t.Setenv("PROVIDER", "SES")
	t.Setenv("FROM_EMAIL", "news@example.com")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2587")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASSWORD", "secret123")
	t.Setenv("SES_REGION", "us-east-1")
	t.Setenv("SES_SENDER", "ses@example.com")
	t.Setenv("GRAPH_TENANT_ID", "tid-123")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Posts.Dir != "content/posts" {
		t.Errorf("Posts.Dir: got %q, want %q", cfg.Posts.Dir, "content/posts")
	}
	if cfg.Posts.WindowHours != 48 {
		t.Errorf("Posts.WindowHours: got %d, want 48", cfg.Posts.WindowHours)
	}
	if cfg.Site.URL != "https://blog.example.com" {
		t.Errorf("Site.URL: got %q, want %q", cfg.Site.URL, "https://blog.example.com")
	}
	if cfg.Subscribers.File != "conf/subs.yml" {
		t.Errorf("Subscribers.File: got %q, want %q", cfg.Subscribers.File, "conf/subs.yml")
	}
	if cfg.Provider != "ses" {
		t.Errorf("Provider: got %q, want %q (lowercased)", cfg.Provider, "ses")
	}
	if cfg.SMTP.From != "news@example.com" {
		t.Errorf("SMTP.From: got %q, want %q", cfg.SMTP.From, "news@example.com")
	}
	if cfg.SMTP.Host != "smtp.example.com" {
		t.Errorf("SMTP.Host: got %q, want %q", cfg.SMTP.Host, "smtp.example.com")
	}
	if cfg.SMTP.Port != 2587 {
		t.Errorf("SMTP.Port: got %d, want 2587", cfg.SMTP.Port)
	}
	if cfg.SMTP.Username != "mailer" {
		t.Errorf("SMTP.Username: got %q, want %q", cfg.SMTP.Username, "mailer")
	}
	if cfg.SMTP.Password != "secret123" {
		t.Errorf("SMTP.Password: got %q, want %q", cfg.SMTP.Password, "secret123")
	}
	if cfg.SES.Region != "us-east-1" {
		t.Errorf("SES.Region: got %q, want %q", cfg.SES.Region, "us-east-1")
	}
	if cfg.SES.Sender != "ses@example.com" {
		t.Errorf("SES.Sender: got %q, want %q", cfg.SES.Sender, "ses@example.com")
	}
	if cfg.Graph.TenantID != "tid-123" {
		t.Errorf("Graph.TenantID: got %q, want %q", cfg.Graph.TenantID, "tid-123")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q (lowercased)", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidIntegerEnvVarsKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOURS_THRESHOLD", "not-a-number")
	t.Setenv("SMTP_PORT", "????")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Posts.WindowHours != 24 {
		t.Errorf("Posts.WindowHours: got %d, want default 24", cfg.Posts.WindowHours)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port: got %d, want default 587", cfg.SMTP.Port)
	}
}

func TestLoadFromFile_YAMLBaseWithEnvOverride(t *testing.T) {
	clearEnv(t)

	yamlContent := `
posts:
  dir: site/posts
  window_hours: 12
site:
  url: https://yaml.example.com
provider: stdout
smtp:
  from: yaml@example.com
  host: yaml-smtp.example.com
  port: 465
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("SMTP_SERVER", "env-smtp.example.com")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Posts.Dir != "site/posts" {
		t.Errorf("Posts.Dir: got %q, want %q", cfg.Posts.Dir, "site/posts")
	}
	if cfg.Posts.WindowHours != 12 {
		t.Errorf("Posts.WindowHours: got %d, want 12", cfg.Posts.WindowHours)
	}
	if cfg.Site.URL != "https://yaml.example.com" {
		t.Errorf("Site.URL: got %q, want %q", cfg.Site.URL, "https://yaml.example.com")
	}
	if cfg.Provider != "stdout" {
		t.Errorf("Provider: got %q, want %q", cfg.Provider, "stdout")
	}
	if cfg.SMTP.From != "yaml@example.com" {
		t.Errorf("SMTP.From: got %q, want %q", cfg.SMTP.From, "yaml@example.com")
	}
	// Env var wins over the YAML layer
	if cfg.SMTP.Host != "env-smtp.example.com" {
		t.Errorf("SMTP.Host: got %q, want env override %q", cfg.SMTP.Host, "env-smtp.example.com")
	}
	if cfg.SMTP.Port != 465 {
		t.Errorf("SMTP.Port: got %d, want 465", cfg.SMTP.Port)
	}
	// Fields absent from the file keep their defaults
	if cfg.Subscribers.File != "subscribers.yml" {
		t.Errorf("Subscribers.File: got %q, want default", cfg.Subscribers.File)
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("posts: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadFromFile(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidate_SMTPMissingFields(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty SMTP config, got nil")
	}

	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFieldsError, got %T", err)
	}

	want := []string{"FROM_EMAIL", "SMTP_SERVER", "SMTP_USER", "SMTP_PASSWORD"}
	if len(missing.Vars) != len(want) {
		t.Fatalf("missing vars: got %v, want %v", missing.Vars, want)
	}
	for i, v := range want {
		if missing.Vars[i] != v {
			t.Errorf("missing vars[%d]: got %q, want %q", i, missing.Vars[i], v)
		}
	}
}

func TestValidate_SMTPComplete(t *testing.T) {
	clearEnv(t)
	t.Setenv("FROM_EMAIL", "news@example.com")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate_SESMissingFields(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "ses")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = cfg.Validate()
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFieldsError, got %v", err)
	}
	if got := strings.Join(missing.Vars, ","); got != "SES_REGION,SES_SENDER" {
		t.Errorf("missing vars: got %q, want %q", got, "SES_REGION,SES_SENDER")
	}
}

func TestValidate_GraphMissingFields(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "graph")
	t.Setenv("GRAPH_TENANT_ID", "tid")
	t.Setenv("GRAPH_CLIENT_ID", "cid")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = cfg.Validate()
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFieldsError, got %v", err)
	}
	if got := strings.Join(missing.Vars, ","); got != "GRAPH_CLIENT_SECRET,GRAPH_SENDER" {
		t.Errorf("missing vars: got %q, want %q", got, "GRAPH_CLIENT_SECRET,GRAPH_SENDER")
	}
}

func TestValidate_StdoutNeedsNothing(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "stdout")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "pigeon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider, got nil")
	}
}
