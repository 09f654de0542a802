// Package chart renders a recipe's per-ingredient cost breakdown.
//
// # Doughnut
//
// [RenderSVG] draws one ring segment per ingredient, coloured from [Palette]
// in order and cycling after ten ingredients, with an optional legend. Legend
// text follows the theme: near-black on light, near-white on dark. Frames no
// wider than [NarrowWidth] put the legend below the ring instead of to its
// right.
//
// Segments are sized by [Shares]. Negative and non-finite costs are drawn as zero-width
// segments; they still get a legend entry.
//
// # Cost tree
//
// [ToDOT] emits a Graphviz digraph with the recipe total at the root and one
// node per ingredient. [RenderDOTSVG] and [RenderDOTPNG] lay it out with the
// embedded Graphviz from goccy/go-graphviz, so no external binary is needed.
//
// # Formats
//
// [Render] dispatches on a format name (svg, dot, png, json) and is what the
// pipeline, CLI and API call.
package chart
