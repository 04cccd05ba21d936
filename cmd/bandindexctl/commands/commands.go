// Package commands wires the engine's commands into cobra subcommands,
// the way cmd/headers/commands and cmd/rpcdaemon/commands structure their
// subcommand packages in the teacher this exercise is adapted from.
package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/ledgerwatch/bandindex/engine"
	"github.com/ledgerwatch/bandindex/kv/memstore"
	"github.com/ledgerwatch/bandindex/script"
)

var storeSizeMiB int

// AddTo registers every bandindexctl subcommand on root.
func AddTo(root *cobra.Command) {
	root.PersistentFlags().IntVar(&storeSizeMiB, "store-mib", 32, "in-memory store arena size, in MiB")

	root.AddCommand(recordCmd())
	root.AddCommand(classifyCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(runCmd())
}

// newEngine builds a fresh, process-local engine: the Storage Adapter
// here is purely in-memory, so each invocation of bandindexctl starts
// from an empty index. That matches spec.md's Non-goal of persistence
// beyond TTL-based expiration — this tool's natural unit of work is one
// process executing a whole script of commands (see the `run`
// subcommand), not a long-lived service accumulating state across
// invocations.
func newEngine() *engine.Engine {
	store := memstore.New(storeSizeMiB * 1024 * 1024)
	return engine.New(store, engine.Options{FrequencyCacheSize: 256})
}

// recordCmd, like the other engine subcommands, takes the raw positional
// wire-in argument vector spec.md §6 describes: <scope> <bands> <window>
// <retention> <timestamp> <command> <command-specific args...>. The CLI
// passes cobra's positional args straight through unmodified.
func recordCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "record -- <scope> <bands> <window> <retention> <timestamp> RECORD <requests...>",
		Short:              "Run one RECORD command against a fresh in-memory index",
		DisableFlagParsing: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newEngine().Dispatch(args)
			return err
		},
	}
}

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify -- <scope> <bands> <window> <retention> <timestamp> CLASSIFY [STRICT] <queries...>",
		Short: "Run one CLASSIFY command against a fresh in-memory index (no prior RECORD will be visible)",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newEngine().Dispatch(args)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare -- <scope> <bands> <window> <retention> <timestamp> COMPARE <sigA> <sigB>",
		Short: "Run one pure pairwise COMPARE command",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newEngine().Dispatch(args)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

var scriptFile string

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a JavaScript snippet that calls record()/classify()/compare() against one shared in-memory index for the process lifetime",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := ioutil.ReadFile(scriptFile)
			if err != nil {
				return err
			}
			rt := script.New(newEngine())
			v, err := rt.Run(string(src))
			if err != nil {
				return err
			}
			fmt.Println(v.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptFile, "script", "", "path to a JavaScript file to execute")
	return cmd
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
