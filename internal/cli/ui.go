package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/recipecost/pkg/cost"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(18)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}


// =============================================================================
// Stats Display
// =============================================================================

// printStats prints calculation statistics on a single line.
func printStats(w io.Writer, rows int, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("%d ingredients", rows))+
		StyleDim.Render(" · ")+statusStyle.Render(status))
}

// =============================================================================
// Report Tables
// =============================================================================

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableCostStyle   = tableCellStyle.Foreground(colorCyan).Align(lipgloss.Right)
)

// Report table columns.
const (
	colItem = iota
	colQuantity
	colUnit
	colPrice
	colCost
)

// reportTable renders the ingredient lines of rep.
func reportTable(rep recipeio.Report) string {
	rows := make([][]string, len(rep.Lines))
	for i, l := range rep.Lines {
		name := l.Name
		if name == "" {
			name = cost.UnnamedLabel
		}
		rows[i] = []string{
			name,
			l.Quantity,
			l.Unit.Label(),
			l.Price + " / " + l.Unit.PriceBasis(),
			cost.FormatCurrency(l.Cost, rep.Currency),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Ingredient", "Qty", "Unit", "Price", "Cost").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return tableHeaderStyle
			case col == colCost:
				return tableCostStyle
			case col == colQuantity || col == colPrice:
				return tableCellStyle.Align(lipgloss.Right)
			}
			return tableCellStyle
		})
	return t.Render()
}

// summaryLines returns the four pricing figures as label/value pairs.
func summaryLines(s cost.Summary, currency string) [][2]string {
	return [][2]string{
		{recipeio.LabelTotalCost, cost.FormatCurrency(s.TotalCost, currency)},
		{recipeio.LabelCostPerServing, cost.FormatCurrency(s.CostPerServing, currency)},
		{recipeio.LabelPriceBeforeVAT, cost.FormatCurrency(s.PriceBeforeVAT, currency)},
		{recipeio.LabelPriceWithVAT, cost.FormatCurrency(s.PriceWithVAT, currency)},
	}
}

// writeReport prints rep as a table followed by its settings and summary.
func writeReport(w io.Writer, rep recipeio.Report) {
	var b strings.Builder
	title := rep.Name
	if title == "" {
		title = "Recipe"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(reportTable(rep))
	b.WriteString("\n")

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(18)
	settings := fmt.Sprintf("%s servings · %s%% markup · %s%% VAT",
		orDash(rep.Settings.Servings), orDash(rep.Settings.MarkupPercent), orDash(rep.Settings.VATPercent))
	b.WriteString(StyleDim.Render(settings))
	b.WriteString("\n")
	for _, kv := range summaryLines(rep.Summary, rep.Currency) {
		b.WriteString(keyStyle.Render(kv[0]) + " " + StyleNumber.Render(kv[1]) + "\n")
	}
	fmt.Fprint(w, b.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
