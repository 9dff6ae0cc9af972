package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	elemeta "github.com/bahrom04-lab/element-desktop-leveldb"
)

var outPath string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract the full metadata record as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, ex, err := openExtractor()
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := ex.Extract(cmd.Context())
		if err != nil {
			return err
		}
		doc, err := elemeta.ExportJSON(rec)
		if err != nil {
			return err
		}
		if outPath != "" {
			if err := os.WriteFile(outPath, doc, 0o644); err != nil {
				return err
			}
		} else if _, err := os.Stdout.Write(doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "fingerprint %s\n", elemeta.Fingerprint(doc))
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the document to a file instead of stdout")
	rootCmd.AddCommand(scanCmd)
}
