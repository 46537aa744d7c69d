package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewGetDataSourceCmd creates a Cobra command that prints a data source
// definition. The password is never printed.
func (f *CommandFactory) NewGetDataSourceCmd(ctx context.Context) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "get-datasource",
		Short: "Get a data source definition. Usage: rs-cli get-datasource -p [path]",
		Long:  "Get the definition of a shared data source as JSON. Usage: rs-cli get-datasource --path [path]",
		Args:  cobra.NoArgs,

		//nolint:contextcheck
		RunE: func(cmd *cobra.Command, _ []string) error {
			cm, err := f.catalog(cmd)
			if err != nil {
				return err
			}

			definition, err := cm.GetDataSource(cmd.Context(), path)
			if err != nil {
				cmd.PrintErrf("Failed to get data source %s: %v\n", path, err)
				return err
			}

			return printJSON(cmd, definition)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Full path of the data source")
	markRequired(cmd, "path")

	cmd.SetContext(ctx)

	return cmd
}
