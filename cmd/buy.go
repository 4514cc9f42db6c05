package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/taxlot"
	"github.com/google/subcommands"
)

// --- Buy Command ---

type buyCmd struct {
	date     string
	symbol   string
	quantity float64
	price    float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -d <date> -s <symbol> -q <quantity> -p <price>

  Records a new purchase lot for a symbol. The settlement date decides the
  order in which later sales will consume the lot.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", taxlot.Today().String(), "Settlement date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Asset symbol")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price <= 0 {
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

	if err := ledger.AddPurchase(c.symbol, day, taxlot.Q(c.quantity), taxlot.M(c.price, *currency)); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording purchase: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %s %s on %s, position is now %s\n", taxlot.Q(c.quantity), c.symbol, day, ledger.CurrentQuantity(c.symbol))
	return subcommands.ExitSuccess
}
