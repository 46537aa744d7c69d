package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkcm/rs-cli/internal/errs"
)

const (
	DryRunFlag  = "dry-run"
	ConfirmFlag = "confirm"
)

var ErrReadConfirmation = errors.New("failed to read confirmation")

// AddShouldProcessFlags registers --dry-run and --confirm on a command that
// changes the catalog
func AddShouldProcessFlags(cmd *cobra.Command, confirmByDefault bool) {
	cmd.Flags().Bool(DryRunFlag, false, "Print what would change without changing it")
	cmd.Flags().Bool(ConfirmFlag, confirmByDefault, "Ask for confirmation before changing anything")
}

// ShouldProcess tells whether action may be performed on target. With
// --dry-run it only prints the action. With --confirm it asks on the command
// input and anything but y or yes declines.
func ShouldProcess(cmd *cobra.Command, target, action string) (bool, error) {
	dryRun, err := cmd.Flags().GetBool(DryRunFlag)
	if err != nil {
		return false, err
	}

	if dryRun {
		cmd.Printf("What if: %s on target \"%s\"\n", action, target)
		return false, nil
	}

	confirm, err := cmd.Flags().GetBool(ConfirmFlag)
	if err != nil {
		return false, err
	}

	if !confirm {
		return true, nil
	}

	cmd.Printf("%s on target \"%s\"? [y/N]: ", action, target)

	answer, err := readLine(cmd.InOrStdin())
	if err != nil {
		return false, errs.Wrap(ErrReadConfirmation, err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads up to the next newline one byte at a time so that answers to
// later prompts stay in the reader
func readLine(r io.Reader) (string, error) {
	var (
		line strings.Builder
		buf  [1]byte
	)

	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			if buf[0] == '\n' {
				return line.String(), nil
			}

			line.WriteByte(buf[0])
		}

		if errors.Is(err, io.EOF) {
			return line.String(), nil
		}

		if err != nil {
			return "", err
		}
	}
}
