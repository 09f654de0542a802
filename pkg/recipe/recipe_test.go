package recipe

import (
	"math"
	"testing"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
)

func TestNew(t *testing.T) {
	r := New()
	if len(r.Ingredients) != 1 {
		t.Fatalf("len(Ingredients) = %d, want 1", len(r.Ingredients))
	}
	if r.Ingredients[0].ID == "" {
		t.Error("blank row should have an ID")
	}
	if r.Ingredients[0].Unit != cost.Kilogram {
		t.Errorf("Unit = %q, want kg", r.Ingredients[0].Unit)
	}
	if r.Settings != DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", r.Settings)
	}
	if !r.IsPristine() {
		t.Error("new recipe should be pristine")
	}
}

func TestAddRemove(t *testing.T) {
	r := New()
	first := r.Ingredients[0].ID
	second := r.Add()
	if second == first {
		t.Fatal("Add should generate a distinct ID")
	}
	if len(r.Ingredients) != 2 {
		t.Fatalf("len = %d, want 2", len(r.Ingredients))
	}

	if err := r.Remove(first); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if r.Ingredients[0].ID != second {
		t.Errorf("remaining ID = %q, want %q", r.Ingredients[0].ID, second)
	}

	err := r.Remove(second)
	if !errors.Is(err, errors.ErrCodeLastIngredient) {
		t.Errorf("Remove(last) error = %v, want LAST_INGREDIENT", err)
	}
	if len(r.Ingredients) != 1 {
		t.Errorf("last row should survive, len = %d", len(r.Ingredients))
	}

	if err := r.Remove("missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Remove(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestUpdate(t *testing.T) {
	r := New()
	id := r.Ingredients[0].ID

	steps := []struct{ field, value string }{
		{FieldName, "Eggs"},
		{FieldQuantity, "4"},
		{FieldUnit, "pcs"},
		{FieldPrice, "0,50"},
	}
	for _, s := range steps {
		if err := r.Update(id, s.field, s.value); err != nil {
			t.Fatalf("Update(%s): %v", s.field, err)
		}
	}

	got, ok := r.Get(id)
	if !ok {
		t.Fatal("Get returned false")
	}
	want := cost.Ingredient{ID: id, Name: "Eggs", Quantity: "4", Unit: cost.Piece, Price: "0,50"}
	if got != want {
		t.Errorf("row = %+v, want %+v", got, want)
	}
	if c := cost.IngredientCost(got); c != 2 {
		t.Errorf("cost = %v, want 2", c)
	}
	if r.IsPristine() {
		t.Error("edited recipe should not be pristine")
	}

	tests := []struct {
		name  string
		id    string
		field string
		value string
		code  errors.Code
	}{
		{"unknown id", "nope", FieldName, "x", errors.ErrCodeNotFound},
		{"unknown field", id, "colour", "red", errors.ErrCodeInvalidField},
		{"bad unit", id, FieldUnit, "cup", errors.ErrCodeInvalidUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Update(tt.id, tt.field, tt.value)
			if !errors.Is(err, tt.code) {
				t.Errorf("Update() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestClear(t *testing.T) {
	r := FromExample("Moussaka")
	r.Settings.Servings = "3"
	r.Clear()

	if !r.IsPristine() {
		t.Error("cleared recipe should be pristine")
	}
	if r.Name != "" {
		t.Errorf("Name = %q, want empty", r.Name)
	}
	if r.Settings != DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", r.Settings)
	}
}

func TestClone(t *testing.T) {
	r := FromExample("Shopska salad")
	c := r.Clone()
	c.Ingredients[0].Quantity = "99"
	if r.Ingredients[0].Quantity == "99" {
		t.Error("Clone shares the ingredient slice")
	}
}

func TestNormalize(t *testing.T) {
	r := &Recipe{Ingredients: []cost.Ingredient{{Name: "Salt", Quantity: "5", Unit: "", Price: "1"}}}
	r.Normalize()
	if r.Ingredients[0].ID == "" || r.Ingredients[0].Unit != cost.Kilogram {
		t.Errorf("Normalize row = %+v", r.Ingredients[0])
	}

	empty := &Recipe{}
	empty.Normalize()
	if len(empty.Ingredients) != 1 {
		t.Errorf("Normalize on empty recipe: len = %d, want 1", len(empty.Ingredients))
	}
}

func TestFromExample(t *testing.T) {
	r := FromExample("shopska SALAD")
	if r.Name != "Shopska salad" {
		t.Errorf("Name = %q", r.Name)
	}
	if len(r.Ingredients) != 7 {
		t.Fatalf("len = %d, want 7", len(r.Ingredients))
	}
	seen := map[string]bool{}
	for _, ing := range r.Ingredients {
		if ing.ID == "" || seen[ing.ID] {
			t.Errorf("row %q has missing or duplicate ID", ing.Name)
		}
		seen[ing.ID] = true
	}

	s := r.Summary()
	if math.Abs(s.TotalCost-6.91) > 1e-9 {
		t.Errorf("TotalCost = %v, want 6.91", s.TotalCost)
	}
	if math.Abs(s.PriceWithVAT-1.6584) > 1e-9 {
		t.Errorf("PriceWithVAT = %v, want 1.6584", s.PriceWithVAT)
	}

	if b := r.Breakdown(); len(b) != 7 || b[0].Label != "Tomatoes" {
		t.Errorf("Breakdown = %+v", b)
	}

	if blank := FromExample("nonexistent"); !blank.IsPristine() {
		t.Error("unknown example should yield a blank recipe")
	}
}

func TestExamplesAreCopies(t *testing.T) {
	ex := Examples()
	ex[0].Ingredients[0].Quantity = "1000"
	if Examples()[0].Ingredients[0].Quantity == "1000" {
		t.Error("Examples exposes internal state")
	}
	if len(ExampleNames()) != 2 {
		t.Errorf("ExampleNames = %v", ExampleNames())
	}
}
