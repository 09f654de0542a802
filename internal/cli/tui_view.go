package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	"github.com/matzehuels/recipecost/pkg/prefs"
	"github.com/matzehuels/recipecost/pkg/recipe"
	"github.com/matzehuels/recipecost/pkg/render/chart"
	"github.com/matzehuels/recipecost/pkg/tutorial"
)

// barWidth is the length of a full breakdown bar.
const barWidth = 24

// editorStyles is the look of the editor under one theme.
type editorStyles struct {
	title     lipgloss.Style
	text      lipgloss.Style
	dim       lipgloss.Style
	accent    lipgloss.Style
	focused   lipgloss.Style
	status    lipgloss.Style
	border    lipgloss.Color
	highlight lipgloss.Color
}

func stylesFor(t prefs.Theme) editorStyles {
	if t == prefs.Dark {
		return editorStyles{
			title:     StyleTitle,
			text:      lipgloss.NewStyle().Foreground(colorWhite),
			dim:       StyleDim,
			accent:    StyleNumber,
			focused:   lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
			status:    StyleWarning,
			border:    colorDim,
			highlight: colorYellow,
		}
	}
	return editorStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("24")),
		text:      lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
		focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		border:    lipgloss.Color("250"),
		highlight: lipgloss.Color("166"),
	}
}

func (m *editorModel) View() string {
	st := stylesFor(m.theme)
	var b strings.Builder

	title := "Recipe cost calculator"
	if m.selected != "" {
		title += " · " + m.selected
	}
	b.WriteString(st.title.Render(title))
	b.WriteString("\n")

	b.WriteString(m.section(st, tutorial.TargetIngredients, "Ingredients", m.viewRows(st)))
	b.WriteString(m.section(st, tutorial.TargetAddButton, "", st.dim.Render("ctrl+n add ingredient · ctrl+d remove · ←/→ change unit")))
	b.WriteString(m.section(st, tutorial.TargetSettings, "Settings", m.viewSettings(st)))
	b.WriteString(m.section(st, tutorial.TargetChart, "Cost analysis", m.viewBreakdown(st)))
	b.WriteString(m.section(st, tutorial.TargetSummary, "Result", m.viewSummary(st)))
	b.WriteString(m.section(st, tutorial.TargetExamples, "",
		st.dim.Render("ctrl+e load example: "+strings.Join(recipe.ExampleNames(), ", "))))
	b.WriteString(m.section(st, tutorial.TargetTheme, "",
		st.dim.Render("ctrl+t theme: ")+st.accent.Render(m.theme.String())))

	switch {
	case m.confirm:
		b.WriteString(st.status.Render("Clear everything? All data will be lost. (y/n)"))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(st.status.Render(m.status))
		b.WriteString("\n")
	}

	if step, ok := m.tour.Current(); ok {
		b.WriteString(m.viewStep(st, step))
	} else {
		b.WriteString(st.dim.Render("tab next field · ↑/↓ rows · ctrl+x clear · f1 tutorial · esc quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// section frames body, highlighting it when the tutorial points at target.
func (m *editorModel) section(st editorStyles, target tutorial.Target, heading, body string) string {
	border := st.border
	if step, ok := m.tour.Current(); ok && step.Target == target {
		border = st.highlight
	}
	if heading != "" {
		body = st.title.Render(heading) + "\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(body) + "\n"
}

func (m *editorModel) viewRows(st editorStyles) string {
	var b strings.Builder
	b.WriteString(st.dim.Render(fmt.Sprintf("  %-18s %-8s %-5s %-10s %s", "Name", "Qty", "Unit", "Price", "Cost")))
	for i, r := range m.rows {
		ing, _ := m.rec.Get(r.id)
		base := i * cellsPerRow

		marker := "  "
		if m.focus >= base && m.focus < base+cellsPerRow {
			marker = st.focused.Render("▸ ")
		}

		unit := fmt.Sprintf("%-5s", ing.Unit.Label())
		if m.focus == base+colUnit {
			unit = st.focused.Render(fmt.Sprintf("‹%s›", ing.Unit.Label()))
			unit += strings.Repeat(" ", max(0, 3-len(ing.Unit.Label())))
		} else {
			unit = st.text.Render(unit)
		}

		b.WriteString("\n")
		b.WriteString(marker)
		b.WriteString(r.name.View() + " ")
		b.WriteString(r.quantity.View() + " ")
		b.WriteString(unit + " ")
		b.WriteString(r.price.View() + st.dim.Render("/"+ing.Unit.PriceBasis()) + " ")
		b.WriteString(st.accent.Render(cost.FormatCurrency(cost.IngredientCost(ing), m.currency)))
	}
	return b.String()
}

func (m *editorModel) viewSettings(st editorStyles) string {
	parts := make([]string, numSettings)
	for i := range m.settings {
		label := st.dim.Render(settingLabels[i] + " ")
		if m.focus == m.cellCount()+i {
			label = st.focused.Render(settingLabels[i] + " ")
		}
		parts[i] = label + m.settings[i].View()
	}
	return strings.Join(parts, "   ")
}

// viewBreakdown draws one bar per ingredient, sized by its share of the
// total and coloured like the chart segments.
func (m *editorModel) viewBreakdown(st editorStyles) string {
	if m.err != nil {
		return st.status.Render(errors.UserMessage(m.err))
	}
	if m.result == nil || m.result.Summary.TotalCost <= 0 {
		return st.dim.Render("Enter quantities and prices to see the breakdown.")
	}
	segments := chart.Segments(m.result.Slices, chart.Options{Theme: m.theme, Currency: m.currency})
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Cost <= 0 {
			continue
		}
		filled := int(math.Round(seg.Share * barWidth))
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(seg.Color)).Render(strings.Repeat("█", filled)) +
			st.dim.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			st.text.Render(fmt.Sprintf("%-18s", truncate(seg.Label, 18))),
			bar,
			st.dim.Render(fmt.Sprintf("%5.1f%%", seg.Share*100)),
			st.accent.Render(seg.Formatted)))
	}
	return strings.Join(lines, "\n")
}

func (m *editorModel) viewSummary(st editorStyles) string {
	if m.result == nil {
		return ""
	}
	keyStyle := st.dim.Width(18)
	lines := make([]string, 0, 4)
	for _, kv := range summaryLines(m.result.Summary, m.currency) {
		lines = append(lines, keyStyle.Render(kv[0])+" "+st.accent.Render(kv[1]))
	}
	return strings.Join(lines, "\n")
}

func (m *editorModel) viewStep(st editorStyles, step tutorial.Step) string {
	pos, total := m.tour.Position()
	next := "→ next"
	if m.tour.IsLast() {
		next = "→ done"
	}
	nav := next + " · esc close"
	if !m.tour.IsFirst() {
		nav = "← back · " + nav
	}
	width := 60
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(st.highlight).
		Padding(0, 1).
		Width(width)
	return box.Render(
		st.title.Render(step.Title) + st.dim.Render(fmt.Sprintf("  %d / %d", pos, total)) + "\n" +
			st.text.Render(step.Content) + "\n" +
			st.dim.Render(nav))
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
