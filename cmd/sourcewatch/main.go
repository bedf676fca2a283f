package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	cmd "github.com/genspectrum/sourcewatch/internal"
	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/middleware"
)

func main() {
	logger.Configure(logger.Options{Level: "info", Color: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()

	if err != nil && !errors.Is(err, middleware.ErrLogged) {
		logger.LogError("%s", err)
	}
	logger.Sync()
	os.Exit(errs.ExitCode(err))
}
