package cache

import (
	"github.com/matzehuels/recipecost/pkg/cost"
)

// Keyer derives cache keys from calculation inputs.
type Keyer interface {
	// SummaryKey identifies the summary and breakdown of a recipe.
	SummaryKey(records []cost.Ingredient, settings cost.Settings) string

	// ChartKey identifies a rendered chart for an already keyed summary.
	ChartKey(summaryKey string, opts ChartKeyOpts) string
}

// ChartKeyOpts holds the render options that change chart output.
type ChartKeyOpts struct {
	Format   string  `json:"format"`
	Theme    string  `json:"theme"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Legend   bool    `json:"legend"`
	Currency string  `json:"currency"`
}

// DefaultKeyer hashes inputs into "summary:<sha256>" and "chart:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// keyRow is the part of an ingredient that affects output. Row IDs are
// excluded so that identical recipes share an entry.
type keyRow struct {
	Name     string `json:"n"`
	Quantity string `json:"q"`
	Unit     string `json:"u"`
	Price    string `json:"p"`
}

type keySettings struct {
	Servings string `json:"s"`
	Markup   string `json:"m"`
	VAT      string `json:"v"`
}

// SummaryKey implements Keyer. Every text field is quoted, so inputs that
// differ only in invalid UTF-8 bytes still get different keys.
func (DefaultKeyer) SummaryKey(records []cost.Ingredient, settings cost.Settings) string {
	rows := make([]keyRow, len(records))
	for i, ing := range records {
		rows[i] = keyRow{
			Name:     quoted(ing.Name),
			Quantity: quoted(ing.Quantity),
			Unit:     quoted(string(ing.Unit)),
			Price:    quoted(ing.Price),
		}
	}
	s := keySettings{
		Servings: quoted(settings.Servings),
		Markup:   quoted(settings.MarkupPercent),
		VAT:      quoted(settings.VATPercent),
	}
	return hashKey("summary", rows, s)
}

// ChartKey implements Keyer.
func (DefaultKeyer) ChartKey(summaryKey string, opts ChartKeyOpts) string {
	opts.Theme = quoted(opts.Theme)
	opts.Currency = quoted(opts.Currency)
	return hashKey("chart", summaryKey, opts)
}
