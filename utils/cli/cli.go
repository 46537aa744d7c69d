package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmdWithInfinitySleep creates a new root cobra command with infinite sleep option.
// The command will sleep indefinitely when the --sleep flag is provided, so a
// container can stay up while the CLI is invoked through exec.
// preRun, if not nil, runs before every sub command.
func NewRootCmdWithInfinitySleep(
	ctx context.Context,
	use string,
	shortDesc string,
	longDesc string,
	preRun func(cmd *cobra.Command) error,
) *cobra.Command {
	var sleep bool

	rootCmd := &cobra.Command{
		Use:           use,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if preRun == nil {
				return nil
			}

			return preRun(cmd)
		},

		Run: func(cmd *cobra.Command, _ []string) {
			if sleep {
				infiniteRun(cmd)
				return
			}

			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&sleep, "sleep", false, "Keep running until SIGINT or SIGTERM")
	rootCmd.SetContext(ctx)

	return rootCmd
}

func infiniteRun(cmd *cobra.Command) {
	cmd.Println("Waiting for commands...")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	<-sigs
	cmd.Println("Shutting down gracefully...")
}
