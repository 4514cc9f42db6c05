package taxlot

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// QuoteBook holds market prices by symbol, to value open positions. Prices
// come from explicit symbol=price pairs or from a quotes JSON document.
type QuoteBook struct {
	currency string
	prices   map[string]Money
}

// NewQuoteBook creates an empty quote book in the given display currency.
func NewQuoteBook(currency string) *QuoteBook {
	return &QuoteBook{currency: currency, prices: make(map[string]Money)}
}

// Set records the market price for a symbol, replacing any previous one.
func (q *QuoteBook) Set(symbol string, price Money) {
	q.prices[symbol] = price
}

// Price returns the recorded market price for a symbol.
func (q *QuoteBook) Price(symbol string) (Money, bool) {
	p, ok := q.prices[symbol]
	return p, ok
}

// quote document paths. The expected document shape is
//
//	{"quotes": [{"symbol": "AAPL", "price": 234.5}, ...]}
//
// as exported by most quote services.
const (
	symbolsPath = "$.quotes[*].symbol"
	pricesPath  = "$.quotes[*].price"
)

// ReadDocument loads quotes from a JSON document. Prices already recorded
// are overwritten by the document's.
func (q *QuoteBook) ReadDocument(r io.Reader) error {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return fmt.Errorf("could not decode quotes document: %w", err)
	}

	jsymbols, err := jsonpath.Get(symbolsPath, jobj)
	if err != nil {
		return fmt.Errorf("error parsing quotes document: %q %w", symbolsPath, err)
	}
	jprices, err := jsonpath.Get(pricesPath, jobj)
	if err != nil {
		return fmt.Errorf("error parsing quotes document: %q %w", pricesPath, err)
	}

	symbols, ok := jsymbols.([]any)
	if !ok {
		return fmt.Errorf("error parsing quotes document: %q is not a list", symbolsPath)
	}
	prices, ok := jprices.([]any)
	if !ok {
		return fmt.Errorf("error parsing quotes document: %q is not a list", pricesPath)
	}
	if len(symbols) != len(prices) {
		return fmt.Errorf("error parsing quotes document: %d symbols for %d prices", len(symbols), len(prices))
	}

	for i, jsym := range symbols {
		symbol, ok := jsym.(string)
		if !ok {
			return fmt.Errorf("error parsing quotes document: symbol %v is not a string", jsym)
		}
		price, err := parseQuoteValue(prices[i])
		if err != nil {
			return fmt.Errorf("error parsing quote for %q: %w", symbol, err)
		}
		q.Set(symbol, M(price, q.currency))
	}
	return nil
}

// parseQuoteValue reads a price from a decoded JSON value. Some quote
// services return prices as strings, sometimes with a comma decimal
// separator, so both forms are accepted.
func parseQuoteValue(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("value is an invalid string %q: %w", v, err)
		}
		return decimal.NewFromFloat(val), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("value %v is neither a float nor a string", jval)
	}
}
