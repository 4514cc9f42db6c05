package taxlot

import (
	"fmt"
	"sort"
	"sync"
)

// Ledger is an in-memory collection of open positions, keyed by asset
// symbol. Symbols are free-form, case-sensitive strings.
//
// A symbol present in the ledger always holds at least one lot with a
// positive quantity: selling a position out removes the symbol entirely.
//
// A Ledger is safe for concurrent use. Purchases and sales are one logical
// operation at a time: a sale reads and mutates a position as a single
// atomic unit, so two concurrent sales can never both see the full quantity
// available.
type Ledger struct {
	mu        sync.Mutex
	positions map[string]Position
	currency  string
}

// NewLedger creates an empty ledger. The currency is only used to display
// monetary amounts; all positions share it.
func NewLedger(currency string) *Ledger {
	return &Ledger{
		positions: make(map[string]Position),
		currency:  currency,
	}
}

// Currency returns the ledger's display currency.
func (l *Ledger) Currency() string { return l.currency }

// AddPurchase records a new lot for the symbol, creating the position if
// absent. The quantity and unit price must be positive.
func (l *Ledger) AddPurchase(symbol string, on Date, quantity Quantity, price Money) error {
	if symbol == "" {
		return fmt.Errorf("%w: symbol is missing", ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: purchase quantity must be positive, got %s", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return fmt.Errorf("%w: purchase price must be positive, got %s", ErrInvalidInput, price)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.positions[symbol] = append(l.positions[symbol], Lot{SettleDate: on, Quantity: quantity, Price: price})
	return nil
}

// Sell consumes open lots of the symbol FIFO and returns the realized gain
// or loss. The sale date is recorded by the caller for its own audit; it
// plays no role in the consumption order, only the purchase lots' dates do.
//
// On any error the ledger is unchanged. A sale against an unknown symbol is
// an empty lot sequence and reports ErrInsufficientQuantity. Selling the
// exact total quantity empties the position and removes the symbol.
func (l *Ledger) Sell(symbol string, on Date, quantity Quantity, price Money) (Money, error) {
	if symbol == "" {
		return Money{}, fmt.Errorf("%w: symbol is missing", ErrInvalidInput)
	}
	if !quantity.IsPositive() {
		return Money{}, fmt.Errorf("%w: sale quantity must be positive, got %s", ErrInvalidInput, quantity)
	}
	if !price.IsPositive() {
		return Money{}, fmt.Errorf("%w: sale price must be positive, got %s", ErrInvalidInput, price)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// An absent position is an empty lot sequence: the matcher reports
	// ErrInsufficientQuantity, not ErrAssetNotFound.
	updated, realized, err := MatchSale(l.positions[symbol], quantity, price)
	if err != nil {
		return Money{}, fmt.Errorf("cannot sell %s %s on %s: %w", quantity, symbol, on, err)
	}

	if len(updated) == 0 {
		delete(l.positions, symbol)
	} else {
		l.positions[symbol] = updated
	}
	return realized, nil
}

// CurrentQuantity returns the total open quantity for the symbol. It is
// zero for an unknown symbol.
func (l *Ledger) CurrentQuantity(symbol string) Quantity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.positions[symbol].TotalQuantity()
}

// CostBasis returns the total amount paid for the quantity still held of
// the symbol. It is zero for an unknown symbol.
func (l *Ledger) CostBasis(symbol string) Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.positions[symbol].CostBasis()
}

// UnrealizedGainLoss returns the paper gain or loss of the position at the
// given market price: current quantity * market price - cost basis.
func (l *Ledger) UnrealizedGainLoss(symbol string, marketPrice Money) (Money, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.positions[symbol]
	if !ok {
		return Money{}, fmt.Errorf("%w: %q", ErrAssetNotFound, symbol)
	}
	return marketPrice.Mul(pos.TotalQuantity()).Sub(pos.CostBasis()), nil
}

// Lots returns a copy of the open lots for the symbol, sorted by settlement
// date, in the order a sale would consume them. It is nil for an unknown
// symbol.
func (l *Ledger) Lots(symbol string) Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.positions[symbol]
	if !ok {
		return nil
	}
	return pos.sortedCopy()
}

// Symbols returns all symbols with an open position, sorted.
func (l *Ledger) Symbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	symbols := make([]string, 0, len(l.positions))
	for s := range l.positions {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}
