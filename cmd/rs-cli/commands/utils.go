package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/openkcm/rs-cli/internal/errs"
)

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errs.Wrap(ErrFormatOutput, err)
	}

	cmd.Println(string(out))

	return nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		err := cmd.MarkFlagRequired(name)
		if err != nil {
			cmd.PrintErrf("failed to mark flag '%s' as required: %v\n", name, err)
		}
	}
}
