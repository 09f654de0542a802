package recipe

import (
	"strings"

	"github.com/matzehuels/recipecost/pkg/cost"
)

// Example is a built-in starter recipe.
type Example struct {
	Name        string            `json:"name"`
	Ingredients []cost.Ingredient `json:"ingredients"`
}

var examples = []Example{
	{
		Name: "Shopska salad",
		Ingredients: []cost.Ingredient{
			{Name: "Tomatoes", Quantity: "0.5", Unit: cost.Kilogram, Price: "3.50"},
			{Name: "Cucumbers", Quantity: "0.4", Unit: cost.Kilogram, Price: "3.00"},
			{Name: "Peppers", Quantity: "0.2", Unit: cost.Kilogram, Price: "4.00"},
			{Name: "White cheese", Quantity: "0.2", Unit: cost.Kilogram, Price: "12.00"},
			{Name: "Onion", Quantity: "0.1", Unit: cost.Kilogram, Price: "2.00"},
			{Name: "Parsley", Quantity: "30", Unit: cost.Gram, Price: "12.00"},
			{Name: "Sunflower oil", Quantity: "50", Unit: cost.Milliliter, Price: "4.00"},
		},
	},
	{
		Name: "Moussaka",
		Ingredients: []cost.Ingredient{
			{Name: "Potatoes", Quantity: "1", Unit: cost.Kilogram, Price: "2.00"},
			{Name: "Minced meat", Quantity: "0.5", Unit: cost.Kilogram, Price: "10.00"},
			{Name: "Onion", Quantity: "0.2", Unit: cost.Kilogram, Price: "2.00"},
			{Name: "Tomato paste", Quantity: "100", Unit: cost.Gram, Price: "8.00"},
			{Name: "Eggs", Quantity: "4", Unit: cost.Piece, Price: "0.50"},
			{Name: "Yogurt", Quantity: "0.4", Unit: cost.Kilogram, Price: "3.00"},
			{Name: "Flour", Quantity: "50", Unit: cost.Gram, Price: "2.00"},
			{Name: "Sunflower oil", Quantity: "100", Unit: cost.Milliliter, Price: "4.00"},
		},
	},
}

// Examples returns the built-in example recipes.
func Examples() []Example {
	out := make([]Example, len(examples))
	for i, ex := range examples {
		out[i] = Example{Name: ex.Name, Ingredients: append([]cost.Ingredient(nil), ex.Ingredients...)}
	}
	return out
}

// ExampleNames lists the names of the built-in examples.
func ExampleNames() []string {
	names := make([]string, len(examples))
	for i, ex := range examples {
		names[i] = ex.Name
	}
	return names
}

// FindExample looks up an example by name, ignoring case.
func FindExample(name string) (Example, bool) {
	for _, ex := range Examples() {
		if strings.EqualFold(ex.Name, strings.TrimSpace(name)) {
			return ex, true
		}
	}
	return Example{}, false
}

// FromExample returns a recipe holding the named example's rows with fresh
// IDs and default settings. An unknown name yields a blank recipe, the same
// as choosing no example.
func FromExample(name string) *Recipe {
	ex, ok := FindExample(name)
	if !ok {
		return New()
	}
	r := &Recipe{Name: ex.Name, Settings: DefaultSettings()}
	for _, ing := range ex.Ingredients {
		r.Append(ing)
	}
	return r
}
