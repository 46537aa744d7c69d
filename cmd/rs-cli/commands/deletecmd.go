package commands

import (
	"context"

	"github.com/spf13/cobra"

	cliUtils "github.com/openkcm/rs-cli/utils/cli"
	"github.com/openkcm/rs-cli/utils/slice"
)

// NewDeleteCmd creates a Cobra command that deletes catalog items. Items are
// deleted in the given order and the first failure stops the run.
func (f *CommandFactory) NewDeleteCmd(ctx context.Context) *cobra.Command {
	var paths []string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete catalog items. Usage: rs-cli delete -p [path] [-p [path]...]",
		Long: "Delete reports, folders, data sources or other catalog items. Deleting a folder deletes " +
			"everything below it. Asks for confirmation unless --confirm=false is given.",
		Args: cobra.NoArgs,

		//nolint:contextcheck
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, path := range slice.Unique(paths) {
				ok, err := cliUtils.ShouldProcess(cmd, path, "Delete item")
				if err != nil {
					return err
				}

				if !ok {
					continue
				}

				cm, err := f.catalog(cmd)
				if err != nil {
					return err
				}

				err = cm.DeleteItem(cmd.Context(), path)
				if err != nil {
					cmd.PrintErrf("Failed to delete %s: %v\n", path, err)
					return err
				}

				cmd.Printf("Deleted %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&paths, "path", "p", nil, "Full path of the item, repeatable")
	cliUtils.AddShouldProcessFlags(cmd, true)
	markRequired(cmd, "path")

	cmd.SetContext(ctx)

	return cmd
}
