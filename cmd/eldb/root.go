package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	elemeta "github.com/bahrom04-lab/element-desktop-leveldb"
	"github.com/bahrom04-lab/element-desktop-leveldb/catalog"
	"github.com/bahrom04-lab/element-desktop-leveldb/store"
	"github.com/bahrom04-lab/element-desktop-leveldb/utils"
)

var (
	dbPath      string
	namespace   string
	catalogPath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "eldb",
	Short: "Read-only metadata extraction from Element Desktop local storage",
	Long: `eldb opens a working copy of Element Desktop's local-storage store
and extracts account, device and room metadata into a deterministic
JSON document. The store is opened strictly read-only; make a working
copy first with 'eldb copy'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the working copy of the store")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "", `key namespace marker (default "_ns")`)
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML rule file replacing the built-in catalog")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger() utils.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return utils.NewDefaultLogger(level)
}

func openExtractor() (*store.Store, *elemeta.Extractor, error) {
	if dbPath == "" {
		return nil, nil, errors.New("--db is required (see 'eldb copy' and 'eldb locate')")
	}
	log := newLogger()
	cat := catalog.Default()
	if catalogPath != "" {
		var err error
		cat, err = catalog.LoadFile(catalogPath)
		if err != nil {
			return nil, nil, err
		}
	}
	st, err := store.Open(dbPath, log)
	if err != nil {
		return nil, nil, err
	}
	ex := elemeta.NewExtractor(st, elemeta.Options{
		Namespace: namespace,
		Catalog:   cat,
		Logger:    log,
	})
	return st, ex, nil
}
