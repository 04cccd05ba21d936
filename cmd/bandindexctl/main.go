// Command bandindexctl is a thin cobra-based CLI entrypoint over the
// engine, structured the way every cmd/* binary in the teacher this
// exercise is adapted from is built on cobra (cmd/headers/commands,
// cmd/rpcdaemon/main.go): one root command, one subcommand per engine
// command. It is a local operator tool, not the RPC/script transport
// spec.md treats as an external collaborator.
package main

import (
	"fmt"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/ledgerwatch/bandindex/cmd/bandindexctl/commands"
)

func main() {
	root := &cobra.Command{
		Use:   "bandindexctl",
		Short: "Drive the banded similarity index engine from the command line",
	}
	verbosity := root.PersistentFlags().Int("verbosity", 3, "logging verbosity: 0=silent .. 5=detail")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		ethlog.Root().SetHandler(ethlog.LvlFilterHandler(ethlog.Lvl(*verbosity), ethlog.StreamHandler(os.Stderr, ethlog.TerminalFormat(false))))
	}

	commands.AddTo(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
