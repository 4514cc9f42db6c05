package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/taxlot"
	"github.com/etnz/taxlot/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	prices     string
	quotesFile string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "unrealized gain analysis at supplied market prices" }
func (*gainsCmd) Usage() string {
	return `tlt gains [-quotes <file>] [-p <symbol=price>[,<symbol=price>...]]

  Calculates and displays the unrealized gain or loss of each open position
  against supplied market prices. Prices come from a quotes JSON document,
  from explicit -p pairs, or both; -p pairs win.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prices, "p", "", "Comma-separated symbol=price pairs (e.g. AAPL=234.5,MSFT=410)")
	f.StringVar(&c.quotesFile, "quotes", "", "Path to a quotes JSON document ({\"quotes\":[{\"symbol\":...,\"price\":...}]})")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.prices == "" && c.quotesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of -p or -quotes is required")
		f.Usage()
		return subcommands.ExitUsageError
	}

	quotes := taxlot.NewQuoteBook(*currency)

	if c.quotesFile != "" {
		doc, err := os.Open(c.quotesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening quotes file: %v\n", err)
			return subcommands.ExitFailure
		}
		err = quotes.ReadDocument(doc)
		doc.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading quotes file %q: %v\n", c.quotesFile, err)
			return subcommands.ExitFailure
		}
	}

	if c.prices != "" {
		for _, pair := range strings.Split(c.prices, ",") {
			symbol, priceStr, ok := strings.Cut(pair, "=")
			if !ok || symbol == "" {
				fmt.Fprintf(os.Stderr, "Error: invalid price pair %q, want symbol=price\n", pair)
				return subcommands.ExitUsageError
			}
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil || price <= 0 {
				fmt.Fprintf(os.Stderr, "Error: invalid price in %q, want a positive number\n", pair)
				return subcommands.ExitUsageError
			}
			quotes.Set(symbol, taxlot.M(price, *currency))
		}
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GainsMarkdown(ledger, quotes))
	return subcommands.ExitSuccess
}
