package commands

import (
	"context"

	"github.com/openkcm/common-sdk/pkg/utils"
	"github.com/spf13/cobra"
)

func (f *CommandFactory) NewVersionCmd(ctx context.Context, buildInfo string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "rs-cli Version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := utils.ExtractFromComplexValue(buildInfo)
			if err != nil {
				return err
			}

			cmd.Println(value)

			return nil
		},
	}

	cmd.SetContext(ctx)

	return cmd
}
