package taxlot

import (
	"fmt"
	"sort"
)

// Lot represents a single purchase of an asset, used for cost basis calculations.
type Lot struct {
	SettleDate Date     // the lot's ordering key for FIFO consumption
	Quantity   Quantity // the amount still unsold from this lot
	Price      Money    // the per-unit cost at purchase
}

// CostBasis returns the total amount paid for the unsold part of the lot.
func (l Lot) CostBasis() Money { return l.Price.Mul(l.Quantity) }

// check verifies the lot is well formed. Stored data can be hand edited, so
// a sale must refuse a malformed lot rather than silently skip it.
func (l Lot) check() error {
	if l.SettleDate.IsZero() {
		return fmt.Errorf("%w: missing settlement date", ErrInvalidLotFormat)
	}
	if l.Quantity.IsNegative() {
		return fmt.Errorf("%w: negative quantity %s", ErrInvalidLotFormat, l.Quantity)
	}
	if !l.Price.IsPositive() {
		return fmt.Errorf("%w: unit price %s is not positive", ErrInvalidLotFormat, l.Price)
	}
	return nil
}

// Position is the ordered multiset of open lots for one asset symbol.
//
// No order is enforced on storage; sales always consume a copy sorted by
// settlement date. Lots with equal dates keep their insertion order (the
// sort is stable), so consumption is deterministic.
type Position []Lot

// TotalQuantity returns the sum of all open lot quantities. It is zero for
// an empty position.
func (p Position) TotalQuantity() Quantity {
	var total Quantity
	for _, l := range p {
		total = total.Add(l.Quantity)
	}
	return total
}

// CostBasis returns the total amount paid for the quantity still held.
// It is zero for an empty position.
func (p Position) CostBasis() Money {
	var total Money
	for _, l := range p {
		total = total.Add(l.CostBasis())
	}
	return total
}

// sortedCopy returns an independent copy of the position with lots in
// ascending settlement date order. Mutating the copy leaves the receiver
// untouched.
func (p Position) sortedCopy() Position {
	sorted := make(Position, len(p))
	copy(sorted, p)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SettleDate.Before(sorted[j].SettleDate)
	})
	return sorted
}

// check verifies every lot in the position.
func (p Position) check() error {
	for i, l := range p {
		if err := l.check(); err != nil {
			return fmt.Errorf("lot %d: %w", i, err)
		}
	}
	return nil
}
