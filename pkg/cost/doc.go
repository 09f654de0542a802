// Package cost is the calculation core of recipecost.
//
// It turns free-form ingredient rows and pricing settings into a cost
// summary. Every function is pure: inputs are read, never modified, and the
// same inputs always produce bit-identical output. Nothing here performs I/O
// or returns an error.
//
// # Input Model
//
// All numeric fields arrive as text, exactly as a user typed them into a
// form. [ParseNumeric] reads them permissively:
//
//   - a comma is accepted as the decimal separator ("3,50" is 3.5)
//   - trailing text after a number is ignored ("12.5kg" is 12.5)
//   - anything unparseable becomes 0
//
// Unit prices are always quoted per kilogram, per liter or per piece. When
// an ingredient is measured in grams or milliliters its quantity is scaled by
// 0.001 before multiplying by the price; see [Unit.Multiplier].
//
// # Pipeline
//
//	rows ──► ParseNumeric ──► IngredientCost ──► Aggregate ──► Summary
//	                                   │
//	                                   └──► Breakdown ──► []Slice (chart)
//
// [Aggregate] sums line costs in row order, divides by the number of
// servings (an empty, zero or invalid value counts as one serving), then
// applies markup and VAT:
//
//	costPerServing = total / servings
//	priceBeforeVAT = costPerServing × (1 + markup/100)
//	priceWithVAT   = priceBeforeVAT × (1 + vat/100)
//
// Rounding happens only in [FormatCurrency], never inside the arithmetic, so
// many small ingredients do not accumulate rounding error.
//
// # Negative Values
//
// A leading minus sign is honored. Negative quantities or prices produce
// negative line costs, which lets a row act as a credit. The core does not
// clamp them; surfaces that want stricter input must validate before calling.
package cost
