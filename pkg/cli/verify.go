package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/defaults"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/checksum"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify generated files against checksums.txt",
		ArgsUsage: "[dir]",
		Description: `Re-hashes every file listed in the checksums.txt written by
"generate --checksums" and reports files that were changed or removed.

# Examples

  enablement verify ./acme`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = "."
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIVerifyTimeout)
			defer cancel()

			mismatches, err := checksum.Verify(ctx, dir)
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
					"checksum verification failed", err, map[string]any{"dir": dir})
			}

			w := cmd.Root().Writer
			if len(mismatches) == 0 {
				fmt.Fprintln(w, formatCheckmark(styleSummary.Render("All files match "+checksum.ChecksumFileName)))
				return nil
			}

			for _, m := range mismatches {
				reason := "modified"
				if m.Missing {
					reason = "missing"
				}
				fmt.Fprintln(w, formatMismatch(m.Path, reason))
			}
			return errors.NewWithContext(errors.ErrCodeConflict,
				fmt.Sprintf("%d file(s) do not match %s", len(mismatches), checksum.ChecksumFileName),
				map[string]any{"dir": dir, "mismatches": len(mismatches)})
		},
	}
}
