package cmd

import (
	"fmt"
	"os"

	"github.com/crazythinker/studio/assets"
	"github.com/crazythinker/studio/internal/feat/content"
	"github.com/crazythinker/studio/pkg/ct/config"
	"github.com/crazythinker/studio/pkg/ct/logger"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.NewWithFormat(cfg.Log.Level, cfg.Log.Format, os.Stderr)
}

// loadCatalog reads the configured catalog file, or the embedded one.
func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	if cfg.Content.Path != "" {
		return content.LoadFile(cfg.Content.Path)
	}
	return content.Load(assets.FS, content.DefaultPath)
}
