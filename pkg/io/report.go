package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

// Report is a calculated recipe ready for export.
type Report struct {
	Name     string        `json:"name,omitempty"`
	Currency string        `json:"currency"`
	Lines    []Line        `json:"lines"`
	Settings cost.Settings `json:"settings"`
	Summary  cost.Summary  `json:"summary"`
}

// Line is one ingredient with its computed cost.
type Line struct {
	Name     string    `json:"name" csv:"item"`
	Quantity string    `json:"quantity" csv:"quantity"`
	Unit     cost.Unit `json:"unit" csv:"unit"`
	Price    string    `json:"price" csv:"price"`
	Cost     float64   `json:"cost" csv:"-"`
}

// NewReport calculates rec. An empty currency uses cost.DefaultCurrency.
func NewReport(rec *recipe.Recipe, currency string) Report {
	if currency == "" {
		currency = cost.DefaultCurrency
	}
	rep := Report{
		Name:     rec.Name,
		Currency: currency,
		Lines:    make([]Line, len(rec.Ingredients)),
		Settings: rec.Settings,
		Summary:  rec.Summary(),
	}
	for i, ing := range rec.Ingredients {
		rep.Lines[i] = Line{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Price:    ing.Price,
			Cost:     cost.IngredientCost(ing),
		}
	}
	return rep
}

// csvLine is a report row. Summary figures follow the ingredient lines with
// only item and cost filled in.
type csvLine struct {
	Line
	Cost string `csv:"cost"`
}

// Labels of the summary rows in CSV reports.
const (
	LabelTotalCost      = "Total cost"
	LabelCostPerServing = "Cost per serving"
	LabelPriceBeforeVAT = "Price before VAT"
	LabelPriceWithVAT   = "Price with VAT"
)

// WriteReport writes rep as JSON or CSV. CSV amounts have two decimals and
// no currency suffix.
func WriteReport(rep Report, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	case FormatCSV:
		rows := make([]csvLine, 0, len(rep.Lines)+4)
		for _, l := range rep.Lines {
			rows = append(rows, csvLine{Line: l, Cost: cost.FormatCurrency(l.Cost, "")})
		}
		for _, s := range []struct {
			label string
			v     float64
		}{
			{LabelTotalCost, rep.Summary.TotalCost},
			{LabelCostPerServing, rep.Summary.CostPerServing},
			{LabelPriceBeforeVAT, rep.Summary.PriceBeforeVAT},
			{LabelPriceWithVAT, rep.Summary.PriceWithVAT},
		} {
			rows = append(rows, csvLine{Line: Line{Name: s.label}, Cost: cost.FormatCurrency(s.v, "")})
		}
		data, err := csvutil.Marshal(rows)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}
	return unsupportedReport(f)
}
