package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/recipecost/pkg/cache"
	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
	"github.com/matzehuels/recipecost/pkg/pipeline"
	"github.com/matzehuels/recipecost/pkg/prefs"
	"github.com/matzehuels/recipecost/pkg/recipe"
	"github.com/matzehuels/recipecost/pkg/tutorial"
)

// tuiCommand creates the interactive editor command.
func (c *CLI) tuiCommand() *cobra.Command {
	var input inputOpts
	var save string

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Edit a recipe interactively with live results",
		Long: `Edit ingredients and settings in the terminal; costs, the breakdown and
the selling price update on every keystroke.

Keys:
  tab / shift+tab  next / previous field     ↑ / ↓   row above / below
  ← / →            change unit               ctrl+n  add ingredient
  ctrl+d           remove ingredient         ctrl+e  load next example
  ctrl+t           toggle theme              ctrl+x  clear everything
  f1               tutorial                  esc     quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rec, err := c.editorRecipe(ctx, &input, args)
			if err != nil {
				return err
			}

			store, err := c.Config.OpenPrefs(ctx)
			if err != nil {
				c.Logger.Warn("preferences unavailable, theme changes will not be saved", "err", err)
				store = prefs.NewMemoryStore()
			}
			defer store.Close()

			runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, c.Logger)
			defer runner.Close()

			m := newEditor(ctx, rec, runner, store, c.Config.Defaults.Settings(), c.currency())
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			edited := final.(*editorModel).rec

			writeReport(cmd.OutOrStdout(), recipeio.NewReport(edited, c.currency()))
			if save != "" {
				if err := recipeio.ExportRecipe(edited, save); err != nil {
					return err
				}
				printFile(save)
			}
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().StringVar(&save, "save", "", "save the recipe to a .csv, .toml, .yaml or .json file on exit")
	return cmd
}

// editorRecipe returns the recipe the editor starts with: a file, the
// flags, or a blank recipe with the configured defaults.
func (c *CLI) editorRecipe(ctx context.Context, input *inputOpts, args []string) (*recipe.Recipe, error) {
	defaults := c.Config.Defaults.Settings()
	if len(args) == 0 && input.example == "" && len(input.ingredients) == 0 {
		rec := recipe.New()
		rec.Settings = defaults
		input.override(rec)
		return rec, nil
	}
	recipes, err := input.load(ctx, args, defaults)
	if err != nil {
		return nil, err
	}
	return recipes[0], nil
}

// =============================================================================
// editorModel - Interactive recipe editor
// =============================================================================

// cellsPerRow is the number of focusable cells in an ingredient row, in
// column order: name, quantity, unit, price.
const cellsPerRow = 4

// Settings fields, focusable after the ingredient cells.
const (
	settingServings = iota
	settingMarkup
	settingVAT
	numSettings
)

var settingLabels = [numSettings]string{"Servings", "Markup %", "VAT %"}

// editorRow holds the text inputs of one ingredient. The unit is not typed;
// it is cycled and read from the recipe.
type editorRow struct {
	id       string
	name     textinput.Model
	quantity textinput.Model
	price    textinput.Model
}

// editorModel is the bubbletea model of the recipe editor. It owns a
// working recipe and recalculates it through the pipeline after every edit.
type editorModel struct {
	ctx      context.Context
	rec      *recipe.Recipe
	rows     []editorRow
	settings [numSettings]textinput.Model
	focus    int

	runner *pipeline.Runner
	result *pipeline.Result
	err    error

	store prefs.Store
	theme prefs.Theme

	defaults cost.Settings
	currency string
	example  int    // index of the last loaded example, -1 before any
	selected string // loaded example, until the rows are edited
	tour     tutorial.Navigator
	confirm  bool // clear-all confirmation pending
	status   string
	width    int
}

func newEditor(ctx context.Context, rec *recipe.Recipe, runner *pipeline.Runner, store prefs.Store, defaults cost.Settings, currency string) *editorModel {
	m := &editorModel{
		ctx:      ctx,
		rec:      rec,
		runner:   runner,
		store:    store,
		theme:    prefs.DefaultTheme,
		defaults: defaults,
		currency: currency,
		example:  -1,
	}
	if t, err := store.Theme(ctx); err == nil {
		m.theme = t
	} else {
		m.status = "Could not read the theme: " + errors.UserMessage(err)
	}
	for i := range m.settings {
		m.settings[i] = newInput("0", "", 8)
	}
	m.rebuildRows()
	m.syncSettings()
	m.applyFocus()
	m.recalculate()
	return m
}

func newInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = width
	ti.CharLimit = 64
	ti.SetValue(value)
	return ti
}

func newEditorRow(ing cost.Ingredient) editorRow {
	return editorRow{
		id:       ing.ID,
		name:     newInput("Ingredient", ing.Name, 18),
		quantity: newInput("0", ing.Quantity, 8),
		price:    newInput("0.00", ing.Price, 8),
	}
}

// rebuildRows recreates the row inputs from the recipe.
func (m *editorModel) rebuildRows() {
	m.rows = make([]editorRow, len(m.rec.Ingredients))
	for i, ing := range m.rec.Ingredients {
		m.rows[i] = newEditorRow(ing)
	}
	if m.focus >= m.focusCount() {
		m.focus = 0
	}
}

// syncSettings copies the recipe settings into the settings inputs.
func (m *editorModel) syncSettings() {
	m.settings[settingServings].SetValue(m.rec.Settings.Servings)
	m.settings[settingMarkup].SetValue(m.rec.Settings.MarkupPercent)
	m.settings[settingVAT].SetValue(m.rec.Settings.VATPercent)
}

func (m *editorModel) cellCount() int  { return len(m.rows) * cellsPerRow }
func (m *editorModel) focusCount() int { return m.cellCount() + numSettings }

// onUnit reports whether the focus is on a unit cell.
func (m *editorModel) onUnit() bool {
	return m.focus < m.cellCount() && m.focus%cellsPerRow == colUnit
}

// input returns the text input at focus index i, or nil for unit cells.
func (m *editorModel) input(i int) *textinput.Model {
	if i >= m.cellCount() {
		return &m.settings[i-m.cellCount()]
	}
	r := &m.rows[i/cellsPerRow]
	switch i % cellsPerRow {
	case colItem:
		return &r.name
	case colQuantity:
		return &r.quantity
	case colPrice:
		return &r.price
	}
	return nil
}

// applyFocus focuses the current input and blurs the rest.
func (m *editorModel) applyFocus() tea.Cmd {
	for i := 0; i < m.focusCount(); i++ {
		if in := m.input(i); in != nil {
			in.Blur()
		}
	}
	if in := m.input(m.focus); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *editorModel) moveFocus(delta int) {
	n := m.focusCount()
	m.focus = (m.focus + delta + n) % n
}

// moveRow moves to the same column of the row above or below. Below the
// last row come the settings.
func (m *editorModel) moveRow(delta int) {
	cells := m.cellCount()
	if m.focus < cells {
		f := m.focus + delta*cellsPerRow
		switch {
		case f < 0:
			return
		case f >= cells:
			f = cells
		}
		m.focus = f
		return
	}
	f := m.focus + delta
	switch {
	case f < cells:
		f = cells - cellsPerRow
	case f >= m.focusCount():
		return
	}
	m.focus = f
}

func (m *editorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if in := m.input(m.focus); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirm {
		m.confirm = false
		if key == "y" || key == "Y" {
			m.clearAll()
			return m, m.applyFocus()
		}
		m.status = "Nothing was cleared"
		return m, nil
	}

	if m.tour.Active() {
		switch key {
		case "right", "enter", "n":
			if m.tour.IsLast() {
				m.tour.Close()
			} else {
				m.tour.Next()
			}
		case "left", "p":
			m.tour.Prev()
		case "esc", "q", "f1":
			m.tour.Close()
		}
		return m, nil
	}

	m.status = ""
	switch key {
	case "esc":
		return m, tea.Quit
	case "tab":
		m.moveFocus(1)
		return m, m.applyFocus()
	case "shift+tab":
		m.moveFocus(-1)
		return m, m.applyFocus()
	case "down":
		m.moveRow(1)
		return m, m.applyFocus()
	case "up":
		m.moveRow(-1)
		return m, m.applyFocus()
	case "ctrl+n":
		m.addRow()
		return m, m.applyFocus()
	case "ctrl+d":
		m.removeRow()
		return m, m.applyFocus()
	case "ctrl+e":
		m.loadNextExample()
		return m, m.applyFocus()
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	case "ctrl+x":
		m.confirm = true
		return m, nil
	case "f1":
		m.tour.Start()
		return m, nil
	}

	if m.onUnit() {
		switch key {
		case "left":
			m.cycleUnit(-1)
		case "right", " ":
			m.cycleUnit(1)
		}
		return m, nil
	}

	in := m.input(m.focus)
	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() != before {
		m.commit(m.focus, in.Value())
	}
	return m, cmd
}

// commit writes the value of the input at focus index i to the recipe.
func (m *editorModel) commit(i int, value string) {
	if i >= m.cellCount() {
		switch i - m.cellCount() {
		case settingServings:
			m.rec.Settings.Servings = value
		case settingMarkup:
			m.rec.Settings.MarkupPercent = value
		case settingVAT:
			m.rec.Settings.VATPercent = value
		}
		m.recalculate()
		return
	}

	field := recipe.FieldName
	switch i % cellsPerRow {
	case colQuantity:
		field = recipe.FieldQuantity
	case colPrice:
		field = recipe.FieldPrice
	}
	if err := m.rec.Update(m.rows[i/cellsPerRow].id, field, value); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.edited()
}

// edited recalculates after a row change. Any content in the rows means
// the recipe no longer is the loaded example.
func (m *editorModel) edited() {
	if !m.rec.IsPristine() {
		m.selected = ""
	}
	m.recalculate()
}

func (m *editorModel) recalculate() {
	m.result, m.err = m.runner.Calculate(m.ctx, pipeline.FromRecipe(m.rec))
}

func (m *editorModel) addRow() {
	id := m.rec.Add()
	ing, _ := m.rec.Get(id)
	m.rows = append(m.rows, newEditorRow(ing))
	m.focus = (len(m.rows) - 1) * cellsPerRow
	m.edited()
}

func (m *editorModel) removeRow() {
	if m.focus >= m.cellCount() {
		m.status = "Move to an ingredient to remove it"
		return
	}
	row := m.focus / cellsPerRow
	if err := m.rec.Remove(m.rows[row].id); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.rows = slices.Delete(m.rows, row, row+1)
	if m.focus >= m.cellCount() {
		m.focus = m.cellCount() - cellsPerRow
	}
	m.edited()
}

// cycleUnit steps the focused row's unit through cost.Units.
func (m *editorModel) cycleUnit(delta int) {
	id := m.rows[m.focus/cellsPerRow].id
	ing, _ := m.rec.Get(id)
	units := cost.Units()
	i := slices.Index(units, ing.Unit)
	next := units[(i+delta+len(units))%len(units)]
	if err := m.rec.Update(id, recipe.FieldUnit, string(next)); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.edited()
}

// loadNextExample replaces the rows with the next built-in example. The
// settings are kept.
func (m *editorModel) loadNextExample() {
	names := recipe.ExampleNames()
	m.example = (m.example + 1) % len(names)
	loaded := recipe.FromExample(names[m.example])

	m.rec.Name = loaded.Name
	m.rec.Ingredients = loaded.Ingredients
	m.selected = loaded.Name
	m.focus = 0
	m.rebuildRows()
	m.recalculate()
	m.status = fmt.Sprintf("Loaded %q", loaded.Name)
}

// clearAll resets rows and settings.
func (m *editorModel) clearAll() {
	m.rec.Clear()
	m.rec.Settings = m.defaults
	m.selected = ""
	m.focus = 0
	m.rebuildRows()
	m.syncSettings()
	m.recalculate()
	m.status = "Cleared"
}

// toggleTheme flips and stores the theme. A store failure still switches
// the theme for this session.
func (m *editorModel) toggleTheme() {
	t, err := prefs.Toggle(m.ctx, m.store)
	if err != nil {
		m.theme = m.theme.Toggle()
		m.status = "Theme not saved: " + errors.UserMessage(err)
		return
	}
	m.theme = t
}
