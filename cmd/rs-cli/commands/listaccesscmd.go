package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/openkcm/rs-cli/internal/reportserver"
)

type itemAccess struct {
	ItemPath      string                `json:"itemPath"`
	InheritParent bool                  `json:"inheritParent"`
	Policies      []reportserver.Policy `json:"policies"`
}

// NewListAccessCmd creates a Cobra command that prints the policies of a
// catalog item.
func (f *CommandFactory) NewListAccessCmd(ctx context.Context) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list-access",
		Short: "List the policies of an item. Usage: rs-cli list-access -p [path]",
		Long:  "List the users and groups with access to a catalog item and their roles as JSON.",
		Args:  cobra.NoArgs,

		//nolint:contextcheck
		RunE: func(cmd *cobra.Command, _ []string) error {
			cm, err := f.catalog(cmd)
			if err != nil {
				return err
			}

			policies, inherit, err := cm.ListAccess(cmd.Context(), path)
			if err != nil {
				cmd.PrintErrf("Failed to list access on %s: %v\n", path, err)
				return err
			}

			if policies == nil {
				policies = []reportserver.Policy{}
			}

			return printJSON(cmd, itemAccess{
				ItemPath:      path,
				InheritParent: inherit,
				Policies:      policies,
			})
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Full path of the item")
	markRequired(cmd, "path")

	cmd.SetContext(ctx)

	return cmd
}
