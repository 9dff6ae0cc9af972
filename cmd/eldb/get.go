package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [field]",
	Short: "Point lookup of a single field, no full scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, ex, err := openExtractor()
		if err != nil {
			return err
		}
		defer st.Close()

		v, ok, err := ex.Lookup(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("field %q is not present in the store", args[0])
		}
		if v.Binary {
			fmt.Fprintln(os.Stderr, "value is binary, shown as hex")
		}
		fmt.Println(v.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
