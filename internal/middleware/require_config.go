package middleware

import (
	"context"
	"fmt"

	"github.com/genspectrum/sourcewatch/internal/config"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/spf13/cobra"
)

// RequireConfig loads and validates the configuration and stores it in the
// command context under CtxKeyConfig.
func RequireConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// --log-file wins over the config file
	if logger.FlagLogFile == "" && cfg.Log.File != "" {
		logger.AttachFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyConfig, cfg)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
