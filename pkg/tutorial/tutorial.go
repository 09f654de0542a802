// Package tutorial holds the onboarding walkthrough shown by interactive
// surfaces.
//
// [Steps] is the fixed sequence of hints. A [Navigator] tracks where the
// user is: it starts inactive, [Navigator.Start] shows the first step, and
// [Navigator.Next] and [Navigator.Prev] stop at either end instead of
// wrapping or closing.
package tutorial

// Target names the part of the interface a step points at.
type Target string

// Step targets.
const (
	TargetIngredients Target = "ingredients"
	TargetAddButton   Target = "add-ingredient"
	TargetSettings    Target = "settings"
	TargetChart       Target = "cost-analysis"
	TargetSummary     Target = "summary"
	TargetExamples    Target = "examples"
	TargetTheme       Target = "theme-switcher"
)

// Step is one hint of the walkthrough.
type Step struct {
	Target  Target `json:"target"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

var steps = []Step{
	{TargetIngredients, "1. Enter ingredients", "Start here by filling in the first product: its name, quantity, unit and unit price."},
	{TargetAddButton, "2. Add more", "Use this button to add rows for the remaining ingredients of your recipe."},
	{TargetSettings, "3. Set up the calculation", "Once the ingredients are in, set how many servings the recipe makes and which markup and VAT to apply."},
	{TargetChart, "4. Analyse the costs", "This chart shows at a glance how much each ingredient contributes to the total cost."},
	{TargetSummary, "5. See the result", "The final figures update as you type: the cost per serving and the selling price."},
	{TargetExamples, "Quick start with examples", "To simply try things out, load a ready-made recipe from this menu as a starting point."},
	{TargetTheme, "Light or dark mode", "Switch between light and dark mode whenever it suits you."},
}

// Steps returns a copy of the walkthrough.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Len is the number of steps.
func Len() int { return len(steps) }

// Navigator tracks the current step. The zero value is inactive.
type Navigator struct {
	step   int
	active bool
}

// Start activates the walkthrough at the first step.
func (n *Navigator) Start() {
	n.step = 0
	n.active = true
}

// Next advances one step. It does nothing on the last step or when inactive.
func (n *Navigator) Next() {
	if n.active && n.step < len(steps)-1 {
		n.step++
	}
}

// Prev goes back one step. It does nothing on the first step or when inactive.
func (n *Navigator) Prev() {
	if n.active && n.step > 0 {
		n.step--
	}
}

// Close deactivates the walkthrough.
func (n *Navigator) Close() {
	n.active = false
	n.step = 0
}

// Active reports whether the walkthrough is showing.
func (n *Navigator) Active() bool { return n.active }

// Current returns the step being shown.
func (n *Navigator) Current() (Step, bool) {
	if !n.active {
		return Step{}, false
	}
	return steps[n.step], true
}

// Position returns the 1-based step number and the step count, or 0 and
// the count when inactive.
func (n *Navigator) Position() (int, int) {
	if !n.active {
		return 0, len(steps)
	}
	return n.step + 1, len(steps)
}

// IsFirst reports whether the first step is showing.
func (n *Navigator) IsFirst() bool { return n.active && n.step == 0 }

// IsLast reports whether the last step is showing. Surfaces offer "Done"
// instead of "Next" there.
func (n *Navigator) IsLast() bool { return n.active && n.step == len(steps)-1 }
