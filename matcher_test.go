package taxlot

import (
	"errors"
	"testing"
)

func usd(v float64) Money { return M(v, "USD") }

func TestMatchSale_FIFO(t *testing.T) {
	testCases := []struct {
		name         string
		position     Position
		quantity     Quantity
		price        Money
		wantLots     Position
		wantRealized Money
	}{
		{
			name: "partial sale only consumes the earliest lot",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
				{SettleDate: MustParse("2023-09-29"), Quantity: Q(10), Price: usd(160.0)},
			},
			quantity: Q(9),
			price:    usd(200.0),
			wantLots: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(1), Price: usd(160.0)},
				{SettleDate: MustParse("2023-09-29"), Quantity: Q(10), Price: usd(160.0)},
			},
			wantRealized: usd(360.0),
		},
		{
			name: "exact sale of a single lot empties the position",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
			},
			quantity:     Q(10),
			price:        usd(200.0),
			wantLots:     Position{},
			wantRealized: usd(400.0),
		},
		{
			name: "sale spanning two lots accumulates per-fragment gains",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
				{SettleDate: MustParse("2023-09-29"), Quantity: Q(10), Price: usd(170.0)},
			},
			quantity: Q(11),
			price:    usd(200.0),
			wantLots: Position{
				{SettleDate: MustParse("2023-09-29"), Quantity: Q(9), Price: usd(170.0)},
			},
			// 10*(200-160) + 1*(200-170)
			wantRealized: usd(430.0),
		},
		{
			name: "stored order does not matter, settlement date does",
			position: Position{
				{SettleDate: MustParse("2023-09-29"), Quantity: Q(10), Price: usd(170.0)},
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
			},
			quantity: Q(5),
			price:    usd(200.0),
			wantLots: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(5), Price: usd(160.0)},
				{SettleDate: MustParse("2023-09-29"), Quantity: Q(10), Price: usd(170.0)},
			},
			wantRealized: usd(200.0),
		},
		{
			name: "equal settlement dates are consumed in insertion order",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(170.0)},
			},
			quantity: Q(12),
			price:    usd(200.0),
			wantLots: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(8), Price: usd(170.0)},
			},
			// 10*(200-160) + 2*(200-170)
			wantRealized: usd(460.0),
		},
		{
			name: "selling below cost realizes a loss",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
			},
			quantity: Q(4),
			price:    usd(150.0),
			wantLots: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(6), Price: usd(160.0)},
			},
			wantRealized: usd(-40.0),
		},
		{
			name: "selling at cost realizes zero",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
			},
			quantity: Q(4),
			price:    usd(160.0),
			wantLots: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(6), Price: usd(160.0)},
			},
			wantRealized: usd(0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, realized, err := MatchSale(tc.position, tc.quantity, tc.price)
			if err != nil {
				t.Fatalf("MatchSale() error = %v", err)
			}
			if !realized.Equal(tc.wantRealized) {
				t.Errorf("MatchSale() realized = %s, want %s", realized, tc.wantRealized)
			}
			if len(got) != len(tc.wantLots) {
				t.Fatalf("MatchSale() returned %d lots, want %d: %v", len(got), len(tc.wantLots), got)
			}
			for i := range got {
				if got[i].SettleDate != tc.wantLots[i].SettleDate {
					t.Errorf("lot %d date = %s, want %s", i, got[i].SettleDate, tc.wantLots[i].SettleDate)
				}
				if !got[i].Quantity.Equal(tc.wantLots[i].Quantity) {
					t.Errorf("lot %d quantity = %s, want %s", i, got[i].Quantity, tc.wantLots[i].Quantity)
				}
				if !got[i].Price.Equal(tc.wantLots[i].Price) {
					t.Errorf("lot %d price = %s, want %s", i, got[i].Price, tc.wantLots[i].Price)
				}
			}
		})
	}
}

func TestMatchSale_InsufficientQuantity(t *testing.T) {
	position := Position{
		{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
		{SettleDate: MustParse("2023-09-29"), Quantity: Q(5), Price: usd(170.0)},
	}

	_, _, err := MatchSale(position, Q(16), usd(200.0))
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("MatchSale() error = %v, want ErrInsufficientQuantity", err)
	}

	// the input position must be left untouched by the failed match
	if !position[0].Quantity.Equal(Q(10)) || !position[1].Quantity.Equal(Q(5)) {
		t.Errorf("failed MatchSale() mutated its input: %v", position)
	}
}

func TestMatchSale_EmptyPosition(t *testing.T) {
	_, _, err := MatchSale(nil, Q(1), usd(200.0))
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("MatchSale() on empty position error = %v, want ErrInsufficientQuantity", err)
	}
}

func TestMatchSale_InvalidQuantity(t *testing.T) {
	position := Position{
		{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
	}
	for _, q := range []Quantity{Q(0), Q(-3)} {
		if _, _, err := MatchSale(position, q, usd(200.0)); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("MatchSale(quantity=%s) error = %v, want ErrInvalidInput", q, err)
		}
	}
}

func TestMatchSale_MalformedLot(t *testing.T) {
	testCases := []struct {
		name     string
		position Position
	}{
		{
			name: "missing settlement date",
			position: Position{
				{Quantity: Q(10), Price: usd(160.0)},
			},
		},
		{
			name: "negative quantity",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(-1), Price: usd(160.0)},
			},
		},
		{
			name: "zero price",
			position: Position{
				{SettleDate: MustParse("2023-09-28"), Quantity: Q(10)},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := MatchSale(tc.position, Q(1), usd(200.0)); !errors.Is(err, ErrInvalidLotFormat) {
				t.Errorf("MatchSale() error = %v, want ErrInvalidLotFormat", err)
			}
		})
	}
}

func TestMatchSale_PartialSaleReducesCostBasis(t *testing.T) {
	// cost basis after a partial sale is the cost basis before, minus the
	// cost of every consumed fragment.
	position := Position{
		{SettleDate: MustParse("2023-09-28"), Quantity: Q(10), Price: usd(160.0)},
		{SettleDate: MustParse("2023-09-29"), Quantity: Q(10), Price: usd(170.0)},
	}
	before := position.CostBasis()

	consumed, err := FIFOCost(position, Q(13))
	if err != nil {
		t.Fatalf("FIFOCost() error = %v", err)
	}
	// 10*160 + 3*170
	if want := usd(2110.0); !consumed.Equal(want) {
		t.Errorf("FIFOCost() = %s, want %s", consumed, want)
	}

	updated, _, err := MatchSale(position, Q(13), usd(200.0))
	if err != nil {
		t.Fatalf("MatchSale() error = %v", err)
	}
	if got, want := updated.CostBasis(), before.Sub(consumed); !got.Equal(want) {
		t.Errorf("cost basis after sale = %s, want %s", got, want)
	}
}

func TestFIFOCost_InsufficientQuantity(t *testing.T) {
	position := Position{
		{SettleDate: MustParse("2023-09-28"), Quantity: Q(2), Price: usd(160.0)},
	}
	if _, err := FIFOCost(position, Q(3)); !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("FIFOCost() error = %v, want ErrInsufficientQuantity", err)
	}
}
