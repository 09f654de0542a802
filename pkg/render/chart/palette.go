package chart

import "github.com/matzehuels/recipecost/pkg/prefs"

// Palette is the segment colour cycle.
var Palette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#C9CBCF", "#7BC225", "#FF6347", "#4682B4",
}

// Color returns the palette colour for the i-th slice.
func Color(i int) string {
	return Palette[i%len(Palette)]
}

// TextColor returns the legend text colour for a theme.
func TextColor(t prefs.Theme) string {
	if t == prefs.Dark {
		return "rgba(255, 255, 255, 0.85)"
	}
	return "rgba(0, 0, 0, 0.85)"
}
