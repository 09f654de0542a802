package cost

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// UnnamedLabel labels a chart slice whose ingredient has no name.
const UnnamedLabel = "Unnamed"

// DefaultCurrency is appended to formatted amounts when no other suffix is configured.
const DefaultCurrency = "лв."

// Slice is one ingredient's share of the total, for line-item display and
// chart segments.
type Slice struct {
	Label string  `json:"label"`
	Cost  float64 `json:"cost"`
}

// Breakdown returns one slice per record, in order. Empty names are
// labelled with [UnnamedLabel].
func Breakdown(records []Ingredient) []Slice {
	out := make([]Slice, len(records))
	for i, ing := range records {
		label := ing.Name
		if label == "" {
			label = UnnamedLabel
		}
		out[i] = Slice{Label: label, Cost: IngredientCost(ing)}
	}
	return out
}

// FormatCurrency renders v with exactly two decimals followed by suffix
// ("6.91 лв."). An empty suffix yields the bare number.
func FormatCurrency(v float64, suffix string) string {
	var s string
	if math.IsInf(v, 0) || math.IsNaN(v) {
		s = strconv.FormatFloat(v, 'f', 2, 64)
	} else {
		s = decimal.NewFromFloat(v).StringFixed(2)
	}
	if suffix == "" {
		return s
	}
	return s + " " + suffix
}
