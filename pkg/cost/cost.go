package cost

// Ingredient is one editable recipe row. Quantity and Price hold the raw
// text the user entered.
type Ingredient struct {
	ID       string `json:"id,omitempty" toml:"-" yaml:"-" csv:"-"`
	Name     string `json:"name" toml:"name" yaml:"name" csv:"name"`
	Quantity string `json:"quantity" toml:"quantity" yaml:"quantity" csv:"quantity"`
	Unit     Unit   `json:"unit" toml:"unit" yaml:"unit" csv:"unit"`
	Price    string `json:"price" toml:"price" yaml:"price" csv:"price"`
}

// Settings holds the per-recipe pricing inputs, as text.
type Settings struct {
	Servings      string `json:"servings" toml:"servings" yaml:"servings"`
	MarkupPercent string `json:"markup" toml:"markup" yaml:"markup"`
	VATPercent    string `json:"vat" toml:"vat" yaml:"vat"`
}

// Summary is the derived pricing for a recipe.
type Summary struct {
	TotalCost      float64 `json:"total_cost"`
	CostPerServing float64 `json:"cost_per_serving"`
	PriceBeforeVAT float64 `json:"price_before_vat"`
	PriceWithVAT   float64 `json:"price_with_vat"`
}

// IngredientCost returns the monetary contribution of one row:
// quantity × unit multiplier × price. No rounding is applied.
func IngredientCost(ing Ingredient) float64 {
	quantity := ParseNumeric(ing.Quantity)
	price := ParseNumeric(ing.Price)
	return quantity * ing.Unit.Multiplier() * price
}

// ServingsDivisor returns the divisor used for per-serving figures. A value that
// parses to zero (including empty or malformed text) counts as one serving.
func (s Settings) ServingsDivisor() float64 {
	n := ParseNumeric(s.Servings)
	if n == 0 {
		return 1
	}
	return n
}

// MarkupFraction returns the markup as a fraction (100% → 1).
func (s Settings) MarkupFraction() float64 {
	return ParseNumeric(s.MarkupPercent) / 100
}

// VATFraction returns the VAT rate as a fraction (20% → 0.2).
func (s Settings) VATFraction() float64 {
	return ParseNumeric(s.VATPercent) / 100
}

// Aggregate computes the four pricing figures for records under s.
// Line costs are summed in sequence order. records is not modified.
func Aggregate(records []Ingredient, s Settings) Summary {
	var total float64
	for _, ing := range records {
		total += IngredientCost(ing)
	}

	perServing := total / s.ServingsDivisor()
	beforeVAT := perServing * (1 + s.MarkupFraction())
	withVAT := beforeVAT * (1 + s.VATFraction())

	return Summary{
		TotalCost:      total,
		CostPerServing: perServing,
		PriceBeforeVAT: beforeVAT,
		PriceWithVAT:   withVAT,
	}
}
