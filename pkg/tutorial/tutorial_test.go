package tutorial

import (
	"fmt"
	"testing"
)

func TestSteps(t *testing.T) {
	s := Steps()
	if len(s) != 7 || Len() != 7 {
		t.Fatalf("got %d steps, want 7", len(s))
	}
	wantTargets := []Target{
		TargetIngredients, TargetAddButton, TargetSettings, TargetChart,
		TargetSummary, TargetExamples, TargetTheme,
	}
	for i, want := range wantTargets {
		if s[i].Target != want {
			t.Errorf("step %d target = %q, want %q", i, s[i].Target, want)
		}
		if s[i].Title == "" || s[i].Content == "" {
			t.Errorf("step %d has empty text", i)
		}
	}

	s[0].Title = "changed"
	if Steps()[0].Title == "changed" {
		t.Error("Steps should return a copy")
	}
}

func TestNavigatorZeroValue(t *testing.T) {
	var n Navigator
	if n.Active() {
		t.Error("zero Navigator should be inactive")
	}
	if _, ok := n.Current(); ok {
		t.Error("inactive Navigator has no current step")
	}
	n.Next()
	n.Prev()
	if pos, total := n.Position(); pos != 0 || total != 7 {
		t.Errorf("Position() = %d/%d, want 0/7", pos, total)
	}
}

func TestNavigatorClamps(t *testing.T) {
	var n Navigator
	n.Start()
	if !n.IsFirst() {
		t.Error("Start should show the first step")
	}

	n.Prev()
	if pos, _ := n.Position(); pos != 1 {
		t.Errorf("Prev on first step moved to %d", pos)
	}

	for i := 0; i < 20; i++ {
		n.Next()
	}
	if pos, total := n.Position(); pos != total {
		t.Errorf("Next should stop at the last step, at %d/%d", pos, total)
	}
	if !n.IsLast() {
		t.Error("IsLast should be true on the last step")
	}
	if cur, _ := n.Current(); cur.Target != TargetTheme {
		t.Errorf("last step target = %q", cur.Target)
	}

	n.Prev()
	if pos, _ := n.Position(); pos != 6 {
		t.Errorf("Prev from last = %d, want 6", pos)
	}

	n.Close()
	if n.Active() {
		t.Error("Close should deactivate")
	}
	n.Start()
	if pos, _ := n.Position(); pos != 1 {
		t.Errorf("restart position = %d, want 1", pos)
	}
}

func ExampleNavigator() {
	var n Navigator
	n.Start()
	n.Next()
	step, _ := n.Current()
	pos, total := n.Position()
	fmt.Printf("%d / %d: %s\n", pos, total, step.Title)
	// Output: 2 / 7: 2. Add more
}
