package chart

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/recipecost/pkg/cost"
)

const (
	legendSwatch = 12.0
	legendRow    = 20.0
	legendFont   = 12.0
	legendWidth  = 180.0
	framePad     = 10.0
	holeRatio    = 0.5
)

// RenderSVG draws slices as a doughnut chart.
func RenderSVG(slices []cost.Slice, opts Options) []byte {
	opts = opts.WithDefaults()
	shares := Shares(slices)

	bottom := opts.Width <= NarrowWidth
	cx, cy, r := ringGeometry(opts, len(slices), bottom)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)

	buf.WriteString(`  <g class="ring">` + "\n")
	start := -math.Pi / 2
	for i, share := range shares {
		if share <= 0 {
			continue
		}
		sweep := share * 2 * math.Pi
		writeSegment(&buf, cx, cy, r, r*holeRatio, start, start+sweep, Color(i), slices[i])
		start += sweep
	}
	buf.WriteString("  </g>\n")

	if opts.Legend {
		writeLegend(&buf, slices, opts, cx, cy, r, bottom)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// ringGeometry centres the ring in the space the legend leaves free.
func ringGeometry(opts Options, n int, bottom bool) (cx, cy, r float64) {
	w, h := opts.Width, opts.Height
	if opts.Legend && n > 0 {
		if bottom {
			h -= float64(n)*legendRow + framePad
		} else {
			w -= legendWidth
		}
	}
	r = math.Max(math.Min(w, h)/2-framePad, 1)
	return w / 2, h / 2, r
}

// writeSegment writes one annular sector. A full turn is split in two
// halves because an SVG arc cannot start and end on the same point.
func writeSegment(buf *bytes.Buffer, cx, cy, ro, ri, a0, a1 float64, color string, s cost.Slice) {
	title := html.EscapeString(s.Label)
	if a1-a0 >= 2*math.Pi-1e-9 {
		mid := a0 + math.Pi
		fmt.Fprintf(buf, `    <path d="%s %s" fill="%s"><title>%s</title></path>`+"\n",
			sectorPath(cx, cy, ro, ri, a0, mid), sectorPath(cx, cy, ro, ri, mid, a1), color, title)
		return
	}
	fmt.Fprintf(buf, `    <path d="%s" fill="%s"><title>%s</title></path>`+"\n",
		sectorPath(cx, cy, ro, ri, a0, a1), color, title)
}

func sectorPath(cx, cy, ro, ri, a0, a1 float64) string {
	large := 0
	if a1-a0 > math.Pi {
		large = 1
	}
	x0, y0 := polar(cx, cy, ro, a0)
	x1, y1 := polar(cx, cy, ro, a1)
	x2, y2 := polar(cx, cy, ri, a1)
	x3, y3 := polar(cx, cy, ri, a0)
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		x0, y0, ro, ro, large, x1, y1, x2, y2, ri, ri, large, x3, y3)
}

func polar(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}

func writeLegend(buf *bytes.Buffer, slices []cost.Slice, opts Options, cx, cy, r float64, bottom bool) {
	if len(slices) == 0 {
		return
	}
	x := cx + r + 2*framePad
	y := cy - float64(len(slices))*legendRow/2
	if bottom {
		x = framePad
		y = cy + r + framePad
	}

	fmt.Fprintf(buf, `  <g class="legend" font-family="sans-serif" font-size="%.0f" fill="%s">`+"\n",
		legendFont, TextColor(opts.Theme))
	for i, s := range slices {
		row := y + float64(i)*legendRow
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
			x, row, legendSwatch, legendSwatch, Color(i))
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f">%s</text>`+"\n",
			x+legendSwatch+6, row+legendSwatch-2, html.EscapeString(s.Label))
	}
	buf.WriteString("  </g>\n")
}
