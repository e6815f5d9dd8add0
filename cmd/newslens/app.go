package main

import (
	"fmt"
	"os"

	"newslens-api/infrastructure/logger/structured"
	newslens "newslens-api/newslens-lib"
	"newslens-api/pkg/config"
	"newslens-api/pkg/featureflags"
)

// app holds the wired components shared by every command
type app struct {
	cfg      *config.Config
	logger   *structured.Logger
	flags    featureflags.Manager
	pipeline *newslens.Client
}

// newApp loads configuration, builds the logger and hands both to the
// library client, which wires cache, fetcher and pipeline services
func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Output: os.Stderr,
	})
	flags := featureflags.NewEnvManager("FEATURE_")

	client, err := newslens.NewClient(
		newslens.WithSettings(cfg),
		newslens.WithLogger(logger),
		newslens.WithFlags(flags),
	)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		flags:    flags,
		pipeline: client,
	}, nil
}

// Close releases cache connections
func (a *app) Close() {
	if err := a.pipeline.Close(); err != nil {
		a.logger.Warn("Failed to close resource", map[string]interface{}{"error": err.Error()})
	}
}
