// Package recipe provides the editable recipe model that surfaces mutate
// between recalculations.
//
// A [Recipe] is an ordered list of ingredient rows plus pricing settings.
// Rows are identified by an opaque ID so that edits address the right row
// even after others are added or removed. The list never becomes empty:
// removing the last remaining row is rejected with LAST_INGREDIENT.
//
// All figures are derived on demand through pkg/cost; a Recipe stores only
// what the user typed.
package recipe

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
)

// Default settings applied to new and cleared recipes.
const (
	DefaultServings = "10"
	DefaultMarkup   = "100"
	DefaultVAT      = "20"
)

// Field names accepted by [Recipe.Update].
const (
	FieldName     = "name"
	FieldQuantity = "quantity"
	FieldUnit     = "unit"
	FieldPrice    = "price"
)

// Recipe is an editable ingredient list with pricing settings.
type Recipe struct {
	Name        string            `json:"name,omitempty" toml:"name" yaml:"name"`
	Ingredients []cost.Ingredient `json:"ingredients" toml:"ingredients" yaml:"ingredients"`
	Settings    cost.Settings     `json:"settings" toml:"settings" yaml:"settings"`
}

// DefaultSettings returns the settings of a fresh recipe.
func DefaultSettings() cost.Settings {
	return cost.Settings{
		Servings:      DefaultServings,
		MarkupPercent: DefaultMarkup,
		VATPercent:    DefaultVAT,
	}
}

// New returns a recipe with a single blank row and default settings.
func New() *Recipe {
	return &Recipe{
		Ingredients: []cost.Ingredient{blankRow()},
		Settings:    DefaultSettings(),
	}
}

func blankRow() cost.Ingredient {
	return cost.Ingredient{ID: newID(), Unit: cost.DefaultUnit}
}

func newID() string {
	return uuid.NewString()
}

// Add appends a blank row and returns its ID.
func (r *Recipe) Add() string {
	row := blankRow()
	r.Ingredients = append(r.Ingredients, row)
	return row.ID
}

// Append adds a filled row, assigning an ID when it has none.
func (r *Recipe) Append(ing cost.Ingredient) string {
	if ing.ID == "" {
		ing.ID = newID()
	}
	if ing.Unit == "" {
		ing.Unit = cost.DefaultUnit
	}
	r.Ingredients = append(r.Ingredients, ing)
	return ing.ID
}

// Remove deletes the row with the given ID.
// It fails with LAST_INGREDIENT when the row is the only one left.
func (r *Recipe) Remove(id string) error {
	i := r.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "ingredient %q not found", id)
	}
	if len(r.Ingredients) <= 1 {
		return errors.New(errors.ErrCodeLastIngredient, "a recipe needs at least one ingredient")
	}
	r.Ingredients = slices.Delete(r.Ingredients, i, i+1)
	return nil
}

// Update sets one field of the row with the given ID. Quantity and price are
// stored verbatim; unit values must name a supported unit.
func (r *Recipe) Update(id, field, value string) error {
	i := r.index(id)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "ingredient %q not found", id)
	}
	row := &r.Ingredients[i]
	switch field {
	case FieldName:
		row.Name = value
	case FieldQuantity:
		row.Quantity = value
	case FieldPrice:
		row.Price = value
	case FieldUnit:
		u, err := cost.ParseUnit(value)
		if err != nil {
			return err
		}
		row.Unit = u
	default:
		return errors.New(errors.ErrCodeInvalidField, "unknown field %q", field)
	}
	return nil
}

// Get returns the row with the given ID.
func (r *Recipe) Get(id string) (cost.Ingredient, bool) {
	i := r.index(id)
	if i < 0 {
		return cost.Ingredient{}, false
	}
	return r.Ingredients[i], true
}

// Clear resets the recipe to a single blank row with default settings.
func (r *Recipe) Clear() {
	r.Name = ""
	r.Ingredients = []cost.Ingredient{blankRow()}
	r.Settings = DefaultSettings()
}

// IsPristine reports whether the recipe holds exactly one row with no name,
// quantity or price entered.
func (r *Recipe) IsPristine() bool {
	if len(r.Ingredients) != 1 {
		return false
	}
	ing := r.Ingredients[0]
	return ing.Name == "" && ing.Quantity == "" && ing.Price == ""
}

// Normalize makes a recipe loaded from outside safe to edit: rows get IDs,
// empty units default to kg and an empty list gets one blank row.
func (r *Recipe) Normalize() {
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == "" {
			r.Ingredients[i].ID = newID()
		}
		if r.Ingredients[i].Unit == "" {
			r.Ingredients[i].Unit = cost.DefaultUnit
		}
	}
	if len(r.Ingredients) == 0 {
		r.Ingredients = []cost.Ingredient{blankRow()}
	}
}

// Clone returns a deep copy.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Ingredients = slices.Clone(r.Ingredients)
	return &c
}

// Summary computes the pricing figures for the current rows and settings.
func (r *Recipe) Summary() cost.Summary {
	return cost.Aggregate(r.Ingredients, r.Settings)
}

// Breakdown returns the per-ingredient chart slices.
func (r *Recipe) Breakdown() []cost.Slice {
	return cost.Breakdown(r.Ingredients)
}

func (r *Recipe) index(id string) int {
	return slices.IndexFunc(r.Ingredients, func(ing cost.Ingredient) bool {
		return ing.ID == id
	})
}
