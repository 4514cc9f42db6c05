// Package renderer turns ledger state into markdown reports for the CLI.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/taxlot"
)

// HoldingsMarkdown renders the open positions of the ledger: per symbol, the
// current quantity, the number of open lots, and the cost basis.
func HoldingsMarkdown(ledger *taxlot.Ledger) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Holdings\n\n")

	symbols := ledger.Symbols()
	if len(symbols) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Open Lots | Cost Basis |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")

	var totalCost taxlot.Money
	for _, symbol := range symbols {
		lots := ledger.Lots(symbol)
		cost := ledger.CostBasis(symbol)
		totalCost = totalCost.Add(cost)

		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
			symbol,
			ledger.CurrentQuantity(symbol),
			len(lots),
			cost,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** |\n", totalCost)

	return b.String()
}

// LotsMarkdown renders the open lots of one symbol in the order a sale would
// consume them.
func LotsMarkdown(ledger *taxlot.Ledger, symbol string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Open Lots for %s\n\n", symbol)

	lots := ledger.Lots(symbol)
	if len(lots) == 0 {
		fmt.Fprintf(&b, "No open position for %s.\n", symbol)
		return b.String()
	}

	fmt.Fprintln(&b, "| Settled | Quantity | Unit Price | Cost Basis |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")

	for _, lot := range lots {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			lot.SettleDate,
			lot.Quantity,
			lot.Price,
			lot.CostBasis(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | | **%s** |\n",
		lots.TotalQuantity(),
		lots.CostBasis(),
	)

	return b.String()
}

// GainsMarkdown renders the unrealized gain or loss of every open position
// quoted in the book. Symbols without a quote are listed separately rather
// than silently skipped.
func GainsMarkdown(ledger *taxlot.Ledger, quotes *taxlot.QuoteBook) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Unrealized Gains\n\n")

	symbols := ledger.Symbols()
	if len(symbols) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Cost Basis | Market Price | Unrealized |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")

	var unquoted []string
	var totalCost, totalGain taxlot.Money
	for _, symbol := range symbols {
		price, ok := quotes.Price(symbol)
		if !ok {
			unquoted = append(unquoted, symbol)
			continue
		}

		gain, err := ledger.UnrealizedGainLoss(symbol, price)
		if err != nil {
			// Symbols() only returns open positions, this cannot happen.
			continue
		}
		cost := ledger.CostBasis(symbol)
		totalCost = totalCost.Add(cost)
		totalGain = totalGain.Add(gain)

		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			symbol,
			ledger.CurrentQuantity(symbol),
			cost,
			price,
			gain.SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | | **%s** |\n", totalCost, totalGain.SignedString())

	if len(unquoted) > 0 {
		fmt.Fprintf(&b, "\nNo market price for: %s.\n", strings.Join(unquoted, ", "))
	}

	return b.String()
}
