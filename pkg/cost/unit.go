package cost

import (
	"strings"

	"github.com/matzehuels/recipecost/pkg/errors"
)

// Unit is the measure an ingredient quantity is entered in.
type Unit string

// Supported units. Prices are quoted per kilogram, liter or piece, so grams
// and milliliters are scaled down before pricing.
const (
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Liter      Unit = "l"
	Milliliter Unit = "ml"
	Piece      Unit = "br"
)

// DefaultUnit is the unit of a freshly added ingredient row.
const DefaultUnit = Kilogram

// Units lists every supported unit in display order.
func Units() []Unit {
	return []Unit{Kilogram, Gram, Liter, Milliliter, Piece}
}

// Multiplier converts a quantity in u into the basis its price is quoted
// against: 0.001 for grams and milliliters, 1 for everything else.
func (u Unit) Multiplier() float64 {
	if u == Gram || u == Milliliter {
		return 0.001
	}
	return 1
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	switch u {
	case Kilogram, Gram, Liter, Milliliter, Piece:
		return true
	}
	return false
}

// Label returns a short human-readable name.
func (u Unit) Label() string {
	if u == Piece {
		return "pcs"
	}
	return string(u)
}

// PriceBasis returns the unit a price for u is quoted per.
func (u Unit) PriceBasis() string {
	switch u {
	case Gram, Kilogram:
		return "kg"
	case Milliliter, Liter:
		return "l"
	case Piece:
		return "pc"
	}
	return string(u)
}

var unitAliases = map[string]Unit{
	"kg":  Kilogram,
	"кг":  Kilogram,
	"g":   Gram,
	"gr":  Gram,
	"гр":  Gram,
	"l":   Liter,
	"л":   Liter,
	"ml":  Milliliter,
	"мл":  Milliliter,
	"br":  Piece,
	"бр":  Piece,
	"pc":  Piece,
	"pcs": Piece,
}

// ParseUnit resolves a unit name typed by a user. It accepts the canonical
// names, common aliases (pcs, gr) and the Bulgarian abbreviations, ignoring
// case and surrounding whitespace. An empty string yields [DefaultUnit].
func ParseUnit(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return DefaultUnit, nil
	}
	if u, ok := unitAliases[key]; ok {
		return u, nil
	}
	return "", errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q (want kg, g, l, ml or br)", s)
}
