package commands

import (
	"context"

	"github.com/spf13/cobra"

	cliUtils "github.com/openkcm/rs-cli/utils/cli"
)

// NewGrantAccessCmd creates a Cobra command that grants a role to an identity
// on a catalog item.
func (f *CommandFactory) NewGrantAccessCmd(ctx context.Context) *cobra.Command {
	var (
		path     string
		identity string
		role     string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "grant-access",
		Short: "Grant a role to a user or group. Usage: rs-cli grant-access -p [path] -i [identity] -r [role]",
		Long: "Grant a role to a user or group on a catalog item, adding a policy when the identity has none. " +
			"With --strict the command fails when the role is already granted.",
		Args: cobra.NoArgs,

		//nolint:contextcheck
		RunE: func(cmd *cobra.Command, _ []string) error {
			ok, err := cliUtils.ShouldProcess(cmd, path, "Grant "+role+" to "+identity)
			if err != nil || !ok {
				return err
			}

			cm, err := f.catalog(cmd)
			if err != nil {
				return err
			}

			granted, err := cm.GrantAccess(cmd.Context(), path, identity, role, strict)
			if err != nil {
				cmd.PrintErrf("Failed to grant access on %s: %v\n", path, err)
				return err
			}

			if !granted {
				cmd.Printf("Role %s is already granted to %s on %s, nothing to grant\n", role, identity, path)
				return nil
			}

			cmd.Printf("Role %s granted to %s on %s\n", role, identity, path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Full path of the item")
	cmd.Flags().StringVarP(&identity, "identity", "i", "", `User or group, e.g. CONTOSO\alice`)
	cmd.Flags().StringVarP(&role, "role", "r", "", "Role name, e.g. Browser")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the role is already granted")
	cliUtils.AddShouldProcessFlags(cmd, false)
	markRequired(cmd, "path", "identity", "role")

	cmd.SetContext(ctx)

	return cmd
}
