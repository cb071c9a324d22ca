// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/convert"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
)

// newInspectCommand builds the inspect subcommand: summarize the export
// without writing a workbook.
func newInspectCommand(log logger.Logger, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the export without writing a workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.resolve(log)
			if err != nil {
				return err
			}

			inv, err := inventory.Load(cmd.Context(), layout, convert.FileSource(opts.file), log)
			if err != nil {
				return err
			}

			OperationPerformed = true
			fmt.Fprint(cmd.OutOrStdout(), renderStats(inv))
			return nil
		},
	}
}
