package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	elemeta "github.com/bahrom04-lab/element-desktop-leveldb"
	"github.com/bahrom04-lab/element-desktop-leveldb/store"
)

// REPL per se.
type REPL struct {
	st *store.Store
	ex *elemeta.Extractor
	rl *readline.Instance
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),

	readline.PcItem("get"),
	readline.PcItem("export"),
	readline.PcItem("fields"),
	readline.PcItem("stats"),

	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func (repl *REPL) Open() (err error) {
	repl.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "◌ ",
		HistoryFile:     ".eldb_cmd_log.txt",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return
	}
	repl.rl.CaptureExitSignal()
	return
}

func (repl *REPL) Close() error {
	if repl.rl != nil {
		_ = repl.rl.Close()
		repl.rl = nil
	}
	return nil
}

func (repl *REPL) Once() (done bool, err error) {
	var line string
	line, err = repl.rl.Readline()
	if err == readline.ErrInterrupt && len(line) != 0 {
		return false, nil
	}
	if err == io.EOF || err == readline.ErrInterrupt {
		return true, nil
	}
	if err != nil {
		return true, err
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return false, nil
	}
	cmd, arg := line, ""
	if ws := strings.IndexAny(line, " \t"); ws > 0 {
		cmd = line[:ws]
		arg = strings.TrimSpace(line[ws:])
	}

	switch cmd {
	case "help":
		fmt.Println("get <field> | export | fields | stats | exit")
	case "get":
		if arg == "" {
			fmt.Println("usage: get <field>")
			break
		}
		v, ok, err := repl.ex.Lookup(arg)
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Println("(not present)")
			break
		}
		if v.Binary {
			fmt.Printf("hex %s\n", v.Text)
		} else {
			fmt.Println(v.Text)
		}
	case "export":
		rec, err := repl.ex.Extract(context.Background())
		if err != nil {
			return false, err
		}
		doc, err := elemeta.ExportJSON(rec)
		if err != nil {
			return false, err
		}
		_, _ = os.Stdout.Write(doc)
		fmt.Printf("fingerprint %s\n", elemeta.Fingerprint(doc))
	case "fields":
		for _, p := range repl.ex.Catalog().Patterns() {
			fmt.Println(p)
		}
	case "stats":
		fmt.Printf("entries %d classified %d foreign %d anomalies %d\n",
			repl.ex.Entries(), repl.ex.Classified(), repl.ex.Foreign(), repl.ex.Anomalies())
	case "exit", "quit":
		return true, nil
	default:
		fmt.Printf("unknown command %q, try help\n", cmd)
	}
	return false, nil
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Inspect the store interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, ex, err := openExtractor()
		if err != nil {
			return err
		}
		defer st.Close()

		repl := &REPL{st: st, ex: ex}
		if err = repl.Open(); err != nil {
			return err
		}
		defer repl.Close()
		for {
			done, err := repl.Once()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			if done {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
