package taxlot

import "fmt"

// MatchSale consumes open lots of a position to satisfy a sale, oldest
// settlement date first (FIFO).
//
// It returns the remaining position with exhausted lots filtered out, and
// the realized gain or loss: the sum, over every lot fragment consumed, of
// (salePrice - lot price) * consumed quantity. The gain may be negative or
// zero.
//
// The input position is never mutated. When the open lots cannot cover the
// requested quantity, MatchSale returns ErrInsufficientQuantity and the
// caller's position is left as it was.
//
// A non-positive quantity is a contract violation by the caller, reported
// as ErrInvalidInput; orchestration is expected to validate before calling.
func MatchSale(position Position, quantity Quantity, salePrice Money) (Position, Money, error) {
	if !quantity.IsPositive() {
		return nil, Money{}, fmt.Errorf("%w: sale quantity must be positive, got %s", ErrInvalidInput, quantity)
	}
	if err := position.check(); err != nil {
		return nil, Money{}, err
	}

	lots := position.sortedCopy()

	remaining := quantity
	var realized Money

	for i := range lots {
		if !remaining.IsPositive() {
			break
		}
		lot := &lots[i]

		consumed := remaining
		if lot.Quantity.LessThan(remaining) {
			// the lot is fully consumed
			consumed = lot.Quantity
		}

		gain := salePrice.Sub(lot.Price).Mul(consumed)
		realized = realized.Add(gain)

		lot.Quantity = lot.Quantity.Sub(consumed)
		remaining = remaining.Sub(consumed)
	}

	if remaining.IsPositive() {
		return nil, Money{}, fmt.Errorf("%w: %s shares outstanding after consuming all open lots", ErrInsufficientQuantity, remaining)
	}

	// exhausted lots must not stay visible in the position
	updated := make(Position, 0, len(lots))
	for _, l := range lots {
		if l.Quantity.IsZero() {
			continue
		}
		updated = append(updated, l)
	}

	return updated, realized, nil
}

// FIFOCost returns the cost basis of selling a quantity from the position,
// oldest lots first, without consuming anything. It is the cost the realized
// gain of an equivalent MatchSale is computed against.
func FIFOCost(position Position, quantity Quantity) (Money, error) {
	if err := position.check(); err != nil {
		return Money{}, err
	}

	var cost Money
	remaining := quantity
	for _, lot := range position.sortedCopy() {
		if !remaining.IsPositive() {
			break
		}
		consumed := remaining
		if lot.Quantity.LessThan(remaining) {
			consumed = lot.Quantity
		}
		cost = cost.Add(lot.Price.Mul(consumed))
		remaining = remaining.Sub(consumed)
	}
	if remaining.IsPositive() {
		return Money{}, fmt.Errorf("%w: %s shares outstanding after consuming all open lots", ErrInsufficientQuantity, remaining)
	}
	return cost, nil
}
