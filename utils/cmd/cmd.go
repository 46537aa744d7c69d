package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/openkcm/rs-cli/internal/config"
	"github.com/openkcm/rs-cli/internal/errs"
	"github.com/openkcm/rs-cli/internal/log"
)

type RunFlags struct {
	// Env is the prefix of the environment variables overriding the config
	Env string

	// ConfigOptions are appended to the options of the config loader
	ConfigOptions []commoncfg.Option

	// ExitMapper turns the error returned by the function into an exit code.
	// Without it every error exits with ExitFailure.
	ExitMapper *errs.ExitMapper
}

// RunFuncWithSignalHandling runs the given function with signal handling. When
// a CTRL-C is received, the context will be cancelled on which the function can
// act upon.
// It returns the exitCode
func RunFuncWithSignalHandling(f func(context.Context, *config.Config) error, runFlags RunFlags) int {
	ctx, cancelOnSignal := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancelOnSignal()

	opts := append([]commoncfg.Option{commoncfg.WithEnvOverride(runFlags.Env)}, runFlags.ConfigOptions...)

	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		log.Error(ctx, "Failed to load the configuration", err)
		_, _ = fmt.Fprintln(os.Stderr, err)

		return int(errs.ExitFailure)
	}

	log.Debug(ctx, "Starting the application", slog.String("application", cfg.Application.Name))

	err = f(ctx, cfg)
	if err != nil {
		log.Debug(ctx, "Command failed", log.ErrorAttr(err))
		_, _ = fmt.Fprintln(os.Stderr, err)

		if runFlags.ExitMapper == nil {
			return int(errs.ExitFailure)
		}

		return int(runFlags.ExitMapper.Transform(err))
	}

	return int(errs.ExitOK)
}
