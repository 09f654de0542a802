package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/jszwec/csvutil"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

type document struct {
	Name        string       `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Ingredients []row        `json:"ingredients" toml:"ingredients" yaml:"ingredients"`
	Settings    *settingsDoc `json:"settings,omitempty" toml:"settings,omitempty" yaml:"settings,omitempty"`
}

type row struct {
	Name     Text   `json:"name" toml:"name" yaml:"name" csv:"name"`
	Quantity Text   `json:"quantity" toml:"quantity" yaml:"quantity" csv:"quantity"`
	Unit     string `json:"unit" toml:"unit" yaml:"unit" csv:"unit"`
	Price    Text   `json:"price" toml:"price" yaml:"price" csv:"price"`
}

type settingsDoc struct {
	Servings Text `json:"servings,omitempty" toml:"servings,omitempty" yaml:"servings,omitempty"`
	Markup   Text `json:"markup,omitempty" toml:"markup,omitempty" yaml:"markup,omitempty"`
	VAT      Text `json:"vat,omitempty" toml:"vat,omitempty" yaml:"vat,omitempty"`
}

// ReadRecipe decodes a recipe in format f from r.
//
// Rows get fresh IDs, units are normalized and missing settings take the
// recipe defaults. A file without rows yields one blank row. ReadRecipe
// does not close r.
func ReadRecipe(r io.Reader, f Format) (*recipe.Recipe, error) {
	var doc document
	switch f {
	case FormatCSV:
		dec, err := csvutil.NewDecoder(csv.NewReader(r))
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
		}
		if err := dec.Decode(&doc.Ingredients); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode csv")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		_, err := ParseFormat(string(f))
		return nil, err
	}
	return doc.toRecipe()
}

func (d document) toRecipe() (*recipe.Recipe, error) {
	rec := &recipe.Recipe{Name: d.Name, Settings: recipe.DefaultSettings()}
	for i, r := range d.Ingredients {
		u, err := cost.ParseUnit(r.Unit)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rec.Append(cost.Ingredient{
			Name:     string(r.Name),
			Quantity: string(r.Quantity),
			Unit:     u,
			Price:    string(r.Price),
		})
	}
	if s := d.Settings; s != nil {
		if s.Servings != "" {
			rec.Settings.Servings = string(s.Servings)
		}
		if s.Markup != "" {
			rec.Settings.MarkupPercent = string(s.Markup)
		}
		if s.VAT != "" {
			rec.Settings.VATPercent = string(s.VAT)
		}
	}
	rec.Normalize()
	return rec, nil
}

// ImportRecipe reads the recipe file at path, choosing the format from its
// extension.
func ImportRecipe(path string) (*recipe.Recipe, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	rec, err := ReadRecipe(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func fromRecipe(rec *recipe.Recipe) document {
	doc := document{
		Name:        rec.Name,
		Ingredients: make([]row, len(rec.Ingredients)),
		Settings: &settingsDoc{
			Servings: Text(rec.Settings.Servings),
			Markup:   Text(rec.Settings.MarkupPercent),
			VAT:      Text(rec.Settings.VATPercent),
		},
	}
	for i, ing := range rec.Ingredients {
		doc.Ingredients[i] = row{
			Name:     Text(ing.Name),
			Quantity: Text(ing.Quantity),
			Unit:     string(ing.Unit),
			Price:    Text(ing.Price),
		}
	}
	return doc
}

// WriteRecipe encodes rec in format f. CSV output carries the rows only.
// Row IDs are never written.
func WriteRecipe(rec *recipe.Recipe, w io.Writer, f Format) error {
	doc := fromRecipe(rec)
	switch f {
	case FormatCSV:
		data, err := csvutil.Marshal(doc.Ingredients)
		if err != nil {
			return fmt.Errorf("encode csv: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	_, err := ParseFormat(string(f))
	return err
}

// ExportRecipe writes rec to path, choosing the format from its extension.
func ExportRecipe(rec *recipe.Recipe, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteRecipe(rec, &buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
