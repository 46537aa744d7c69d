package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkcm/rs-cli/internal/errs"
	cliUtils "github.com/openkcm/rs-cli/utils/cli"
)

// NewSetPasswordCmd creates a Cobra command that replaces the stored password
// of a shared data source.
func (f *CommandFactory) NewSetPasswordCmd(ctx context.Context) *cobra.Command {
	var (
		path          string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set the password of a data source. Usage: rs-cli set-password -p [path] --password [password]",
		Long: "Set the stored password of a shared data source. The rest of the definition is kept. " +
			"Use --password-stdin to read the password from standard input.",
		Args: cobra.NoArgs,

		//nolint:contextcheck
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errs.Wrap(ErrReadPassword, err)
				}

				password = strings.TrimRight(string(in), "\r\n")
			}

			ok, err := cliUtils.ShouldProcess(cmd, path, "Set data source password")
			if err != nil || !ok {
				return err
			}

			cm, err := f.catalog(cmd)
			if err != nil {
				return err
			}

			err = cm.SetDataSourcePassword(cmd.Context(), path, password)
			if err != nil {
				cmd.PrintErrf("Failed to set password of %s: %v\n", path, err)
				return err
			}

			cmd.Printf("Password of data source %s updated\n", path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Full path of the data source, e.g. /Data Sources/Sales")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the new password from stdin")
	cliUtils.AddShouldProcessFlags(cmd, false)

	markRequired(cmd, "path")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	cmd.MarkFlagsOneRequired("password", "password-stdin")
	cmd.MarkFlagsMutuallyExclusive("password-stdin", cliUtils.ConfirmFlag)

	cmd.SetContext(ctx)

	return cmd
}
