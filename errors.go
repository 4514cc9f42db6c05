package taxlot

import "errors"

// Error kinds reported by ledger operations. Callers match them with
// errors.Is; the wrapped message carries the operation detail.
var (
	// ErrInvalidInput reports a non-positive quantity or unit price on a
	// purchase or a sale.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAssetNotFound reports a query against a symbol with no open position.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInsufficientQuantity reports a sale larger than the total open
	// quantity. A sale against an unknown symbol is reported this way too:
	// an absent position is an empty lot sequence.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrInvalidLotFormat reports a malformed stored lot (zero settlement
	// date, negative quantity, or non-positive unit price).
	ErrInvalidLotFormat = errors.New("invalid lot format")
)
