package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bahrom04-lab/element-desktop-leveldb/workdir"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the Element Desktop store location for this OS",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := workdir.DefaultStorePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
