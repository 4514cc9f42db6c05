package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/taxlot"
)

func usd(v float64) taxlot.Money { return taxlot.M(v, "USD") }

func newTestLedger(t *testing.T) *taxlot.Ledger {
	t.Helper()
	ledger := taxlot.NewLedger("USD")
	if err := ledger.AddPurchase("AAPL", taxlot.MustParse("2023-09-28"), taxlot.Q(10), usd(160.0)); err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}
	if err := ledger.AddPurchase("AAPL", taxlot.MustParse("2023-09-29"), taxlot.Q(10), usd(170.0)); err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}
	if err := ledger.AddPurchase("MSFT", taxlot.MustParse("2023-09-28"), taxlot.Q(5), usd(300.0)); err != nil {
		t.Fatalf("AddPurchase() error = %v", err)
	}
	return ledger
}

func TestHoldingsMarkdown(t *testing.T) {
	md := HoldingsMarkdown(newTestLedger(t))

	for _, want := range []string{
		"# Holdings",
		"| AAPL | 20 | 2 |",
		"| MSFT | 5 | 1 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("HoldingsMarkdown() missing %q in:\n%s", want, md)
		}
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	md := HoldingsMarkdown(taxlot.NewLedger("USD"))
	if !strings.Contains(md, "No open positions.") {
		t.Errorf("HoldingsMarkdown() of empty ledger = %q", md)
	}
}

func TestLotsMarkdown(t *testing.T) {
	md := LotsMarkdown(newTestLedger(t), "AAPL")

	if !strings.Contains(md, "# Open Lots for AAPL") {
		t.Errorf("LotsMarkdown() missing title in:\n%s", md)
	}
	// lots listed in consumption order
	first := strings.Index(md, "2023-09-28")
	second := strings.Index(md, "2023-09-29")
	if first < 0 || second < 0 || first > second {
		t.Errorf("LotsMarkdown() lots out of consumption order:\n%s", md)
	}
}

func TestLotsMarkdown_UnknownSymbol(t *testing.T) {
	md := LotsMarkdown(newTestLedger(t), "TSLA")
	if !strings.Contains(md, "No open position for TSLA.") {
		t.Errorf("LotsMarkdown() for unknown symbol = %q", md)
	}
}

func TestGainsMarkdown(t *testing.T) {
	ledger := newTestLedger(t)
	quotes := taxlot.NewQuoteBook("USD")
	quotes.Set("AAPL", usd(200.0))

	md := GainsMarkdown(ledger, quotes)

	if !strings.Contains(md, "| AAPL | 20 |") {
		t.Errorf("GainsMarkdown() missing AAPL row in:\n%s", md)
	}
	// 20*200 - (10*160 + 10*170) = +700
	if !strings.Contains(md, "+$700.00") {
		t.Errorf("GainsMarkdown() missing unrealized gain in:\n%s", md)
	}
	// MSFT has no quote: reported, not silently skipped
	if !strings.Contains(md, "No market price for: MSFT.") {
		t.Errorf("GainsMarkdown() missing unquoted symbols note in:\n%s", md)
	}
}
