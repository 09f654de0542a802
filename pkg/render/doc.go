// Package render turns recipe cost breakdowns into visual outputs.
//
// The [chart] subpackage draws the per-ingredient breakdown as a doughnut
// chart (SVG, drawn directly) or as a Graphviz "cost tree" (DOT, and SVG or
// PNG rendered through go-graphviz).
//
//	svg := chart.RenderSVG(recipe.Breakdown(), chart.Options{Theme: prefs.Dark})
//	png, err := chart.RenderDOTPNG(ctx, chart.ToDOT(slices, chart.Options{}))
package render
