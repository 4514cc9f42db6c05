package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// --- Sell Command ---

type sellCmd struct {
	date     string
	symbol   string
	quantity float64
	price    float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -d <date> -s <symbol> -q <quantity> -p <price>

  Sells shares of a symbol, consuming open lots oldest settlement date
  first, and reports the realized gain or loss. If the quantity is missing
  the whole position is sold.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Sale date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares, if missing all shares are sold")
	f.Float64Var(&c.price, "p", 0, "Price per share")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity < 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := taxlot.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	quantity := taxlot.Q(c.quantity)
	if quantity.IsZero() {
		// quick fix, sell all.
		quantity = ledger.CurrentQuantity(c.symbol)
		if quantity.IsZero() {
			fmt.Fprintf(os.Stderr, "Error: no open position for %s\n", c.symbol)
			return subcommands.ExitFailure
		}
	}

	realized, err := ledger.Sell(c.symbol, day, quantity, taxlot.M(c.price, *currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording sale: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %s %s on %s, realized gain %s, position is now %s\n",
		quantity, c.symbol, day, realized.SignedString(), ledger.CurrentQuantity(c.symbol))
	return subcommands.ExitSuccess
}
