package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	"github.com/matzehuels/recipecost/pkg/prefs"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatDOT, FormatPNG, FormatJSON}

// Default frame size.
const (
	DefaultWidth  = 640.0
	DefaultHeight = 400.0

	// NarrowWidth is the widest frame that still gets a bottom legend.
	NarrowWidth = 768.0
)

// Options configures chart output.
type Options struct {
	Theme    prefs.Theme
	Width    float64
	Height   float64
	Legend   bool
	Currency string
}

// WithDefaults returns o with zero fields set to their defaults.
func (o Options) WithDefaults() Options {
	if !o.Theme.Valid() {
		o.Theme = prefs.DefaultTheme
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Currency == "" {
		o.Currency = cost.DefaultCurrency
	}
	return o
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid chart format: %q (must be one of: svg, dot, png, json)", format)
}

// Shares returns each slice's fraction of the total. Negative and
// non-finite costs count as zero, and every share is zero when nothing is
// positive. Costs are scaled by the largest one before summing so that
// huge finite costs cannot overflow the total.
func Shares(slices []cost.Slice) []float64 {
	out := make([]float64, len(slices))
	var largest float64
	for _, s := range slices {
		if drawable(s.Cost) && s.Cost > largest {
			largest = s.Cost
		}
	}
	if largest == 0 {
		return out
	}
	var total float64
	for _, s := range slices {
		if drawable(s.Cost) {
			total += s.Cost / largest
		}
	}
	for i, s := range slices {
		if drawable(s.Cost) {
			out[i] = s.Cost / largest / total
		}
	}
	return out
}

func drawable(c float64) bool {
	return c > 0 && !math.IsInf(c, 1)
}

// Segment is the JSON form of one chart slice.
type Segment struct {
	Label     string  `json:"label"`
	Cost      float64 `json:"cost"`
	Formatted string  `json:"formatted"`
	Share     float64 `json:"share"`
	Color     string  `json:"color"`
}

// Segments pairs each slice with its share and colour.
func Segments(slices []cost.Slice, opts Options) []Segment {
	opts = opts.WithDefaults()
	shares := Shares(slices)
	out := make([]Segment, len(slices))
	for i, s := range slices {
		out[i] = Segment{
			Label:     s.Label,
			Cost:      s.Cost,
			Formatted: cost.FormatCurrency(s.Cost, opts.Currency),
			Share:     shares[i],
			Color:     Color(i),
		}
	}
	return out
}

// RenderJSON encodes [Segments] as indented JSON.
func RenderJSON(slices []cost.Slice, opts Options) ([]byte, error) {
	data, err := json.MarshalIndent(Segments(slices, opts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode chart json: %w", err)
	}
	return data, nil
}

// Render produces the chart in the given format.
func Render(ctx context.Context, slices []cost.Slice, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(slices, opts), nil
	case FormatDOT:
		return []byte(ToDOT(slices, opts)), nil
	case FormatPNG:
		return RenderDOTPNG(ctx, ToDOT(slices, opts))
	case FormatJSON:
		return RenderJSON(slices, opts)
	}
	return nil, ValidateFormat(format)
}
