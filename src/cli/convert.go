// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/convert"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/xlsx"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
)

// newConvertCommand builds the convert subcommand: CSV export in, styled
// workbook out.
func newConvertCommand(log logger.Logger, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the CSV export into the styled workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.resolve(log)
			if err != nil {
				return err
			}

			sink := xlsx.NewSink(opts.output)
			runner := convert.NewRunner(layout, log)
			result, err := runner.Run(cmd.Context(), convert.FileSource(opts.file), sink)
			if err != nil {
				return err
			}

			OperationPerformed = true
			log.Printf("converted %d records (%d hierarchy roots) into %s",
				result.Stats.Records, result.Stats.Roots, sink.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "workbook output path (default CCADB-certificates.xlsx)")
	return cmd
}
