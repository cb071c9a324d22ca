// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"crypto/x509"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/convert"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
	x509certs "github.com/kidmin/ccadb-certificates-tabular/src/internal/x509/certs"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
)

// newLookupCommand builds the lookup subcommand: find certificates in the
// export by fingerprint, record ID, or a certificate file.
func newLookupCommand(log logger.Logger, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up certificates in the export",
		Long: "Looks up certificates in the CCADB export by SHA-256 fingerprint, by CCADB\n" +
			"record ID, or by decoding a certificate file (PEM, DER or PKCS7; every\n" +
			"certificate in a PEM bundle is looked up).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := opts.resolve(log)
			if err != nil {
				return err
			}

			refs, err := lookupRefs(opts)
			if err != nil {
				return err
			}

			inv, err := inventory.Load(cmd.Context(), layout, convert.FileSource(opts.file), log)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			found := 0
			for _, ref := range refs {
				row, ok := findRecord(inv, ref)
				if !ok {
					log.Printf("no record for %s", ref)
					continue
				}
				found++

				fmt.Fprint(out, renderRecord(inv, row))
				if opts.chain {
					hops, err := inv.TrustChain(ref)
					if err != nil {
						return err
					}
					fmt.Fprint(out, renderChain(hops))
				}
				fmt.Fprintln(out)
			}
			if found == 0 {
				return fmt.Errorf("cli: none of the queried certificates are in the export: %w",
					inventory.ErrNotFound)
			}

			OperationPerformed = true
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.sha256, "sha256", "", "certificate SHA-256 fingerprint (colons and spaces allowed)")
	cmd.Flags().StringVar(&opts.id, "id", "", "CCADB record ID")
	cmd.Flags().StringVar(&opts.certFile, "cert", "", "certificate file to fingerprint and look up (PEM, DER or PKCS7)")
	cmd.Flags().BoolVar(&opts.chain, "chain", false, "print the trust chain for each match")
	return cmd
}

// lookupRefs collects the lookup keys from the flags. A certificate file
// contributes the fingerprint of every certificate it contains.
func lookupRefs(opts *options) ([]string, error) {
	var refs []string

	if opts.certFile != "" {
		data, err := os.ReadFile(opts.certFile)
		if err != nil {
			return nil, fmt.Errorf("cli: reading certificate file: %w", err)
		}
		decoder := x509certs.New()
		certs, err := decoder.DecodeMultiple(data)
		if err != nil {
			// A DER PKCS7 bundle does not parse as concatenated certificates.
			cert, p7err := decoder.Decode(data)
			if p7err != nil {
				return nil, err
			}
			certs = []*x509.Certificate{cert}
		}
		for _, cert := range certs {
			refs = append(refs, x509certs.Fingerprint(cert))
		}
	}
	if opts.sha256 != "" {
		refs = append(refs, opts.sha256)
	}
	if opts.id != "" {
		refs = append(refs, opts.id)
	}

	if len(refs) == 0 {
		return nil, ErrLookupKeyRequired
	}
	return refs, nil
}

// findRecord resolves ref as a record ID first, then as a fingerprint,
// mirroring how trust chains are resolved.
func findRecord(inv *inventory.Inventory, ref string) ([]any, bool) {
	if row, ok := inv.ByID(ref); ok {
		return row, true
	}
	return inv.BySHA256(ref)
}
