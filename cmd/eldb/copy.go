package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bahrom04-lab/element-desktop-leveldb/workdir"
)

var fromPath string

var copyCmd = &cobra.Command{
	Use:   "copy [dest]",
	Short: "Create a working copy of the live store",
	Long: `Copy the engine file set (CURRENT, MANIFEST, logs, tables) from the
live Element Desktop store into a fresh directory. Extraction always
runs against such a copy, never against the live store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := fromPath
		if src == "" {
			var err error
			src, err = workdir.DefaultStorePath()
			if err != nil {
				return err
			}
		}
		n, err := workdir.CopyStore(src, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("copied %d store files from %s to %s\n", n, src, args[0])
		return nil
	},
}

func init() {
	copyCmd.Flags().StringVar(&fromPath, "from", "", "source store directory (default: the OS install location)")
	rootCmd.AddCommand(copyCmd)
}
