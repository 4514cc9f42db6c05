package taxlot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// lotRecord is the persisted form of one open lot: the symbol and the lot
// triple (quantity, settlement date, unit price). One record per line in
// JSONL. Amounts are plain decimals; the currency is a display concern and
// is not persisted.
type lotRecord struct {
	Symbol   string          `json:"symbol"`
	Date     Date            `json:"date"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// MarshalJSON implements the json.Marshaler interface for lotRecord with a
// stable field order for canonical output.
func (r lotRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", r.Symbol)
	w.Append("date", r.Date)
	w.Append("quantity", r.Quantity)
	w.Append("price", r.Price)
	return w.MarshalJSON()
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, one open
// lot per line, ordered by symbol then settlement date (insertion order for
// equal dates). The output is canonical: decoding and re-encoding a ledger
// is a fixed point.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, symbol := range ledger.Symbols() {
		for _, lot := range ledger.Lots(symbol) {
			record := lotRecord{
				Symbol:   symbol,
				Date:     lot.SettleDate,
				Quantity: lot.Quantity,
				Price:    lot.Price.value,
			}
			data, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to marshal lot of %q: %w", symbol, err)
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return fmt.Errorf("failed to write lot of %q: %w", symbol, err)
			}
		}
	}
	return nil
}

// DecodeLedger reads a JSONL stream of lot records and rebuilds a ledger.
// Every record goes through the same validation as a live purchase, so a
// hand-edited file with a non-positive quantity or price is rejected.
func DecodeLedger(r io.Reader, currency string) (*Ledger, error) {
	ledger := NewLedger(currency)
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var record lotRecord
		if err := json.Unmarshal(lineBytes, &record); err != nil {
			return nil, fmt.Errorf("line %d: could not decode lot record %q: %w", line, string(lineBytes), err)
		}
		if record.Date.IsZero() {
			return nil, fmt.Errorf("line %d: %w: missing settlement date", line, ErrInvalidLotFormat)
		}

		if err := ledger.AddPurchase(record.Symbol, record.Date, record.Quantity, M(record.Price, currency)); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return ledger, nil
}
