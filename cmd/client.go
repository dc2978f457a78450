package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/redditlive/internal/config"
	"github.com/redditlive/internal/retry"
	"github.com/redditlive/internal/transport"
	"github.com/redditlive/pkg/live"
)

// newClient builds the transport client from the loaded configuration.
func newClient(c *cli.Context) (*transport.Client, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := zerolog.WarnLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	retryConfig := retry.DefaultConfig()
	retryConfig.MaxRetries = cfg.HTTP.MaxRetries

	return transport.New(transport.Config{
		BaseURL:   cfg.Reddit.BaseURL,
		AuthURL:   cfg.Reddit.AuthURL,
		UserAgent: cfg.Reddit.UserAgent,
		Credentials: transport.Credentials{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
			Username:     cfg.Reddit.Username,
			Password:     cfg.Reddit.Password,
		},
		Timeout:           time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
		Retry:             retryConfig,
		Logger:            logger,
	}), nil
}

// threadArg builds a Thread from the command's first positional argument.
func threadArg(c *cli.Context) (*live.Thread, error) {
	id := c.Args().First()
	if id == "" {
		return nil, fmt.Errorf("a live thread id is required")
	}

	client, err := newClient(c)
	if err != nil {
		return nil, err
	}
	return live.NewThread(client, id)
}
