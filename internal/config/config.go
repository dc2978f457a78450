package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration.
type Config struct {
	Reddit struct {
		ClientID     string `koanf:"client_id"`
		ClientSecret string `koanf:"client_secret"`
		Username     string `koanf:"username"`
		Password     string `koanf:"password"`
		UserAgent    string `koanf:"user_agent"`
		BaseURL      string `koanf:"base_url"`
		AuthURL      string `koanf:"auth_url"`
	} `koanf:"reddit"`

	HTTP struct {
		TimeoutSeconds    int `koanf:"timeout_seconds"`
		RequestsPerMinute int `koanf:"requests_per_minute"`
		MaxRetries        int `koanf:"max_retries"`
	} `koanf:"http"`
}

// LoadConfig loads the configuration from a file, falling back to default
// locations, with REDDITLIVE_ environment variables taking precedence.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"reddit.base_url":          "https://oauth.reddit.com",
		"reddit.auth_url":          "https://www.reddit.com/api/v1/access_token",
		"reddit.user_agent":        "redditlive/0.1.0",
		"http.timeout_seconds":     30,
		"http.requests_per_minute": 60,
		"http.max_retries":         3,
	}, "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./redditlive.toml", "$HOME/.redditlive.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// Load from environment variables with prefix REDDITLIVE_
	k.Load(env.Provider("REDDITLIVE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "REDDITLIVE_")), "_", ".", 1)
	}), nil)

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig writes a sample configuration file.
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# redditlive configuration

[reddit]
client_id = "your-client-id"
client_secret = "your-client-secret"
# Omit username/password to use application-only auth.
username = ""
password = ""
user_agent = "redditlive/0.1.0 by /u/yourusername"

[http]
timeout_seconds = 30
requests_per_minute = 60
max_retries = 3
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration.
func Validate(config *Config) error {
	if config.Reddit.ClientID == "" {
		return fmt.Errorf("reddit client_id is required")
	}
	if config.Reddit.ClientSecret == "" {
		return fmt.Errorf("reddit client_secret is required")
	}
	if config.Reddit.UserAgent == "" {
		return fmt.Errorf("reddit user_agent is required")
	}
	if (config.Reddit.Username == "") != (config.Reddit.Password == "") {
		return fmt.Errorf("reddit username and password must be provided together")
	}
	if config.HTTP.RequestsPerMinute < 0 {
		return fmt.Errorf("http requests_per_minute must not be negative")
	}
	return nil
}
