package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://oauth.reddit.com", cfg.Reddit.BaseURL)
	assert.Equal(t, "https://www.reddit.com/api/v1/access_token", cfg.Reddit.AuthURL)
	assert.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, 60, cfg.HTTP.RequestsPerMinute)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redditlive.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[reddit]
client_id = "file-id"
client_secret = "file-secret"
user_agent = "test agent"

[http]
timeout_seconds = 10
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.Reddit.ClientID)
	assert.Equal(t, "test agent", cfg.Reddit.UserAgent)
	assert.Equal(t, 10, cfg.HTTP.TimeoutSeconds)
	// untouched keys keep their defaults
	assert.Equal(t, 60, cfg.HTTP.RequestsPerMinute)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redditlive.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[reddit]
client_id = "file-id"
`), 0644))

	t.Setenv("REDDITLIVE_REDDIT_CLIENT_ID", "env-id")
	t.Setenv("REDDITLIVE_HTTP_MAX_RETRIES", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Reddit.ClientID)
	assert.Equal(t, 5, cfg.HTTP.MaxRetries)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Reddit.ClientID = "id"
		cfg.Reddit.ClientSecret = "secret"
		cfg.Reddit.UserAgent = "agent"
		return cfg
	}

	require.NoError(t, Validate(valid()))

	cfg := valid()
	cfg.Reddit.ClientID = ""
	assert.ErrorContains(t, Validate(cfg), "client_id")

	cfg = valid()
	cfg.Reddit.ClientSecret = ""
	assert.ErrorContains(t, Validate(cfg), "client_secret")

	cfg = valid()
	cfg.Reddit.UserAgent = ""
	assert.ErrorContains(t, Validate(cfg), "user_agent")

	cfg = valid()
	cfg.Reddit.Username = "spez"
	assert.ErrorContains(t, Validate(cfg), "together")

	cfg = valid()
	cfg.Reddit.Username = "spez"
	cfg.Reddit.Password = "hunter2"
	require.NoError(t, Validate(cfg))
}
