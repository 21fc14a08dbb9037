package main

import (
	"fmt"

	"glscene/internal/config"

	"github.com/urfave/cli"
)

// Load the configuration named by the global --config flag, or the defaults.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	path := ctx.GlobalString("config")
	if path == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	logger.Infof("loaded configuration from %s", path)
	return cfg, nil
}

// Print the effective configuration.
func PrintConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
