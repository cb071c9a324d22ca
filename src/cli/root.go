// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/config"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/helper/posix"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
)

var (
	// OperationPerformed reports that a subcommand ran its operation to
	// completion. The main package uses it to decide whether a completion
	// line is worth logging.
	OperationPerformed bool

	// OperationPerformedSuccessfully reports that Execute finished with a
	// completed operation and no error.
	OperationPerformedSuccessfully bool
)

var (
	// ErrInputFileRequired is returned when no CSV export is named, by flag
	// or by config file.
	ErrInputFileRequired = errors.New("cli: CCADB CSV export required (use --file or a config file)")

	// ErrLookupKeyRequired is returned when lookup is invoked with nothing
	// to look up.
	ErrLookupKeyRequired = errors.New("cli: lookup needs --sha256, --id or --cert")
)

// options carries flag state shared across the subcommands. Values left
// empty by flags are filled from the config file in resolve.
type options struct {
	file       string
	schemaName string
	configFile string
	quiet      bool

	output string

	sha256   string
	id       string
	certFile string
	chain    bool
}

// resolve loads the config file (explicit path, environment variable, or
// defaults), merges it under the explicit flags and returns the layout
// for the selected schema version.
func (o *options) resolve(log logger.Logger) (*schema.Layout, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.file == "" {
		o.file = cfg.Inventory.CSVFile
	}
	if o.schemaName == "" {
		o.schemaName = cfg.Inventory.Schema
	}
	if o.output == "" {
		o.output = cfg.Workbook.Output
	}
	if cfg.Log.Quiet {
		o.quiet = true
	}
	if o.quiet {
		log.SetOutput(io.Discard)
	}
	if o.file == "" {
		return nil, ErrInputFileRequired
	}
	return schema.Lookup(o.schemaName)
}

// Execute runs the root command and returns the first error encountered.
// Errors are not logged here; the main package owns that.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName(),
		Short: "CCADB certificate inventory converter",
		Long: "Converts the CCADB AllCertificateRecords CSV export into a styled workbook\n" +
			"with typed, enriched columns, and answers trust questions about the export\n" +
			"without leaving the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "CCADB CSV export path (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&opts.schemaName, "schema", "", "export layout version: v1, v1r2, v1r3, v1r4 or v2 (default v2)")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file, YAML or JSON (default $CCADB_TABULAR_CONFIG_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress phase progress output")

	rootCmd.AddCommand(
		newConvertCommand(log, opts),
		newInspectCommand(log, opts),
		newLookupCommand(log, opts),
	)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil && OperationPerformed {
		OperationPerformedSuccessfully = true
	}
	return err
}
