package commands

import (
	"context"

	"github.com/spf13/cobra"

	cliUtils "github.com/openkcm/rs-cli/utils/cli"
)

// NewRevokeAccessCmd creates a Cobra command that removes every role of an
// identity on a catalog item.
func (f *CommandFactory) NewRevokeAccessCmd(ctx context.Context) *cobra.Command {
	var (
		path     string
		identity string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "revoke-access",
		Short: "Revoke access of a user or group. Usage: rs-cli revoke-access -p [path] -i [identity]",
		Long: "Remove the policy of a user or group from a catalog item. With --strict the command fails " +
			"when the identity has no policy on the item.",
		Args: cobra.NoArgs,

		//nolint:contextcheck
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := cliUtils.ShouldProcess(cmd, path, "Revoke access for "+identity)
			if err != nil || !ok {
				return err
			}

			cm, err := f.catalog(cmd)
			if err != nil {
				return err
			}

			revoked, err := cm.RevokeAccess(cmd.Context(), path, identity, strict)
			if err != nil {
				cmd.PrintErrf("Failed to revoke access on %s: %v\n", path, err)
				return err
			}

			if !revoked {
				cmd.Printf("%s has no access on %s, nothing to revoke\n", identity, path)
				return nil
			}

			cmd.Printf("Access of %s on %s revoked\n", identity, path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Full path of the item")
	cmd.Flags().StringVarP(&identity, "identity", "i", "", `User or group, e.g. CONTOSO\alice`)
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the identity has no access to revoke")
	cliUtils.AddShouldProcessFlags(cmd, false)
	markRequired(cmd, "path", "identity")

	cmd.SetContext(ctx)

	return cmd
}
