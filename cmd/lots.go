package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list the open lots of a symbol in consumption order" }
func (*lotsCmd) Usage() string {
	return `tlt lots <symbol>

  Lists the open lots of a symbol sorted by settlement date, the order in
  which a sale would consume them.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LotsMarkdown(ledger, symbol))
	return subcommands.ExitSuccess
}
