// Package config provides environment-variable-first configuration loading
// with optional YAML file fallback for the blog notifier.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultWindowHours is the trailing modification window scanned for posts.
const defaultWindowHours = 24

// defaultSMTPPort is the standard mail submission port.
const defaultSMTPPort = 587

// Config holds the complete application configuration.
type Config struct {
	Posts       PostsConfig       `yaml:"posts"`
	Site        SiteConfig        `yaml:"site"`
	Subscribers SubscribersConfig `yaml:"subscribers"`
	Provider    string            `yaml:"provider"`
	SMTP        SMTPConfig        `yaml:"smtp"`
	SES         SESConfig         `yaml:"ses"`
	Graph       GraphConfig       `yaml:"graph"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PostsConfig holds post discovery configuration.
type PostsConfig struct {
	Dir         string `yaml:"dir"`
	WindowHours int    `yaml:"window_hours"`
}

// SiteConfig holds the public site settings used when building links.
type SiteConfig struct {
	URL string `yaml:"url"`
}

// SubscribersConfig holds the location of the subscriber list side file.
type SubscribersConfig struct {
	File string `yaml:"file"`
}

// SMTPConfig holds outbound SMTP relay configuration.
type SMTPConfig struct {
	From     string `yaml:"from"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SESConfig holds AWS SES v2 API configuration.
type SESConfig struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Sender          string `yaml:"sender"`
}

// GraphConfig holds Microsoft Graph API configuration.
type GraphConfig struct {
	TenantID     string `yaml:"tenant_id"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Sender       string `yaml:"sender"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from environment variables with sensible defaults.
// Environment variables always take precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables. Returns an error if the
// specified file path does not exist.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables always override YAML values
	cfg.applyEnvVars()

	return cfg, nil
}

// Validate checks that the required fields for the selected delivery
// provider are present. The returned error names the missing environment
// variables so the operator can act on it directly.
func (c *Config) Validate() error {
	var missing []string

	switch c.Provider {
	case "smtp":
		if c.SMTP.From == "" {
			missing = append(missing, "FROM_EMAIL")
		}
		if c.SMTP.Host == "" {
			missing = append(missing, "SMTP_SERVER")
		}
		if c.SMTP.Username == "" {
			missing = append(missing, "SMTP_USER")
		}
		if c.SMTP.Password == "" {
			missing = append(missing, "SMTP_PASSWORD")
		}
	case "ses":
		if c.SES.Region == "" {
			missing = append(missing, "SES_REGION")
		}
		if c.SES.Sender == "" {
			missing = append(missing, "SES_SENDER")
		}
	case "graph":
		if c.Graph.TenantID == "" {
			missing = append(missing, "GRAPH_TENANT_ID")
		}
		if c.Graph.ClientID == "" {
			missing = append(missing, "GRAPH_CLIENT_ID")
		}
		if c.Graph.ClientSecret == "" {
			missing = append(missing, "GRAPH_CLIENT_SECRET")
		}
		if c.Graph.Sender == "" {
			missing = append(missing, "GRAPH_SENDER")
		}
	case "stdout":
		// nothing to validate
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Vars: missing}
	}
	return nil
}

// MissingFieldsError reports required configuration fields that are unset,
// identified by their environment variable names.
type MissingFieldsError struct {
	Vars []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required configuration: " + strings.Join(e.Vars, ", ")
}

// applyDefaults sets sensible default values for all configuration fields.
func (c *Config) applyDefaults() {
	c.Posts.Dir = "posts"
	c.Posts.WindowHours = defaultWindowHours
	c.Site.URL = "https://your-website-url.example.com"
	c.Subscribers.File = "subscribers.yml"
	c.Provider = "smtp"
	c.SMTP.Port = defaultSMTPPort
	c.Logging.Level = "info"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("POSTS_DIR"); v != "" {
		c.Posts.Dir = v
	}
	if v := os.Getenv("HOURS_THRESHOLD"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			c.Posts.WindowHours = hours
		}
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		c.Site.URL = v
	}
	if v := os.Getenv("SUBSCRIBERS_FILE"); v != "" {
		c.Subscribers.File = v
	}
	if v := os.Getenv("PROVIDER"); v != "" {
		c.Provider = strings.ToLower(v)
	}

	if v := os.Getenv("FROM_EMAIL"); v != "" {
		c.SMTP.From = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}

	if v := os.Getenv("SES_REGION"); v != "" {
		c.SES.Region = v
	}
	if v := os.Getenv("SES_ACCESS_KEY_ID"); v != "" {
		c.SES.AccessKeyID = v
	}
	if v := os.Getenv("SES_SECRET_ACCESS_KEY"); v != "" {
		c.SES.SecretAccessKey = v
	}
	if v := os.Getenv("SES_SENDER"); v != "" {
		c.SES.Sender = v
	}

	if v := os.Getenv("GRAPH_TENANT_ID"); v != "" {
		c.Graph.TenantID = v
	}
	if v := os.Getenv("GRAPH_CLIENT_ID"); v != "" {
		c.Graph.ClientID = v
	}
	if v := os.Getenv("GRAPH_CLIENT_SECRET"); v != "" {
		c.Graph.ClientSecret = v
	}
	if v := os.Getenv("GRAPH_SENDER"); v != "" {
		c.Graph.Sender = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}
