package chart

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/prefs"
)

// ToDOT converts slices to a Graphviz "cost tree": the recipe total at the
// root with one filled box per ingredient beneath it.
func ToDOT(slices []cost.Slice, opts Options) string {
	opts = opts.WithDefaults()

	var total float64
	for _, s := range slices {
		total += s.Cost
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"sans-serif\", fontcolor=black];\n")
	fmt.Fprintf(&buf, "  edge [color=%q];\n", edgeColor(opts))
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  recipe [label=%q, fillcolor=white];\n", "Total\n"+cost.FormatCurrency(total, opts.Currency))
	for i, s := range slices {
		label := s.Label + "\n" + cost.FormatCurrency(s.Cost, opts.Currency)
		fmt.Fprintf(&buf, "  i%d [label=%q, fillcolor=%q];\n", i, label, Color(i))
	}

	if len(slices) > 0 {
		buf.WriteString("\n")
	}
	for i := range slices {
		fmt.Fprintf(&buf, "  recipe -> i%d;\n", i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeColor(opts Options) string {
	if opts.Theme == prefs.Dark {
		return "white"
	}
	return "black"
}

// RenderDOTSVG lays out DOT source and renders it to SVG.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderDOTPNG lays out DOT source and renders it to PNG.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
