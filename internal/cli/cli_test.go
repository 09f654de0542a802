package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/recipecost/pkg/errors"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
)

// isolate points config, cache and preferences at a temporary directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{
		"RECIPECOST_CONFIG", "RECIPECOST_SERVINGS", "RECIPECOST_MARKUP", "RECIPECOST_VAT",
		"RECIPECOST_CURRENCY", "RECIPECOST_CACHE_BACKEND", "RECIPECOST_CACHE_TTL", "RECIPECOST_CACHE_PREFIX",
		"RECIPECOST_PREFS_BACKEND",
	} {
		t.Setenv(k, "")
	}
	return dir
}

// run executes the root command with args and returns what it wrote to
// its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeReports(t *testing.T, s string) []recipeio.Report {
	t.Helper()
	var reps []recipeio.Report
	dec := json.NewDecoder(strings.NewReader(s))
	for {
		var rep recipeio.Report
		err := dec.Decode(&rep)
		if stderrors.Is(err, io.EOF) {
			return reps
		}
		if err != nil {
			t.Fatalf("decode report: %v\n%s", err, s)
		}
		reps = append(reps, rep)
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCalcExampleJSON(t *testing.T) {
	isolate(t)
	out, err := run(t, "calc", "--example", "shopska salad", "--format", "json", "--no-cache")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	reps := decodeReports(t, out)
	if len(reps) != 1 {
		t.Fatalf("got %d reports, want 1", len(reps))
	}
	rep := reps[0]
	if rep.Name != "Shopska salad" || len(rep.Lines) != 7 || rep.Currency != "лв." {
		t.Errorf("report = %q, %d lines, currency %q", rep.Name, len(rep.Lines), rep.Currency)
	}
	if !approx(rep.Summary.TotalCost, 6.91) || !approx(rep.Summary.PriceWithVAT, 1.6584) {
		t.Errorf("summary = %+v", rep.Summary)
	}
}

func TestCalcIngredientsCSV(t *testing.T) {
	isolate(t)
	out, err := run(t, "calc",
		"-i", "Flour:500:g:2.40",
		"-i", "Eggs:3:br:0.45",
		"--servings", "1", "--markup", "0", "--vat", "0",
		"--format", "csv", "--no-cache")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	for _, want := range []string{
		"item,quantity,unit,price,cost",
		"Flour,500,g,2.40,1.20",
		"Eggs,3,br,0.45,1.35",
		"Total cost,,,,2.55",
		"Price with VAT,,,,2.55",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("csv output missing %q:\n%s", want, out)
		}
	}
}

func TestCalcFilesKeepOrder(t *testing.T) {
	dir := isolate(t)
	toml := filepath.Join(dir, "a.toml")
	csv := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(toml, []byte("name = \"Pancakes\"\n[[ingredients]]\nname = \"Flour\"\nquantity = 1\nunit = \"kg\"\nprice = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csv, []byte("name,quantity,unit,price\nMilk,2,l,1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "calc", toml, csv, "--format", "json", "--servings", "1")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	reps := decodeReports(t, out)
	if len(reps) != 2 {
		t.Fatalf("got %d reports, want 2", len(reps))
	}
	if reps[0].Name != "Pancakes" || reps[1].Name != "b.csv" {
		t.Errorf("names = %q, %q; want Pancakes, b.csv", reps[0].Name, reps[1].Name)
	}
	if !approx(reps[0].Summary.TotalCost, 2) || !approx(reps[1].Summary.TotalCost, 3) {
		t.Errorf("totals = %v, %v", reps[0].Summary.TotalCost, reps[1].Summary.TotalCost)
	}
	if reps[1].Settings.Servings != "1" {
		t.Errorf("--servings not applied to file recipe: %+v", reps[1].Settings)
	}
}

func TestCalcTableUsesCache(t *testing.T) {
	isolate(t)
	first, err := run(t, "calc", "--example", "Moussaka")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	for _, want := range []string{"Moussaka", "Minced meat", "Price with VAT", "8 ingredients", iconFresh} {
		if !strings.Contains(first, want) {
			t.Errorf("table output missing %q:\n%s", want, first)
		}
	}

	second, err := run(t, "calc", "--example", "Moussaka")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !strings.Contains(second, iconCached) {
		t.Errorf("second run should be served from the cache:\n%s", second)
	}

	refreshed, err := run(t, "calc", "--example", "Moussaka", "--refresh")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !strings.Contains(refreshed, iconFresh) {
		t.Errorf("--refresh should recalculate:\n%s", refreshed)
	}
}

func TestCalcErrors(t *testing.T) {
	dir := isolate(t)
	recipeFile := filepath.Join(dir, "r.csv")
	if err := os.WriteFile(recipeFile, []byte("name,quantity,unit,price\nSalt,1,kg,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no input", []string{"calc"}, errors.ErrCodeInvalidInput},
		{"unknown example", []string{"calc", "--example", "Lasagne"}, errors.ErrCodeNotFound},
		{"bad unit", []string{"calc", "-i", "Salt:1:oz:1"}, errors.ErrCodeInvalidUnit},
		{"short ingredient", []string{"calc", "-i", "Salt:1"}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"calc", "--example", "Moussaka", "--format", "xml"}, errors.ErrCodeInvalidFormat},
		{"files and flags", []string{"calc", recipeFile, "--example", "Moussaka"}, errors.ErrCodeInvalidInput},
		{"unknown extension", []string{"calc", filepath.Join(dir, "r.txt")}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := run(t, "calc", filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestCalcSave(t *testing.T) {
	dir := isolate(t)
	saved := filepath.Join(dir, "salad.yaml")
	if _, err := run(t, "calc", "--example", "Shopska salad", "--save", saved, "--format", "json"); err != nil {
		t.Fatalf("calc --save: %v", err)
	}

	out, err := run(t, "calc", saved, "--format", "json", "--no-cache")
	if err != nil {
		t.Fatalf("calc saved file: %v", err)
	}
	reps := decodeReports(t, out)
	if len(reps) != 1 || !approx(reps[0].Summary.TotalCost, 6.91) {
		t.Errorf("saved recipe reports = %+v", reps)
	}
}

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		in       string
		name     string
		quantity string
		unit     string
		price    string
		wantErr  bool
	}{
		{"Flour:500:g:2.40", "Flour", "500", "g", "2.40", false},
		{" Eggs : 3 : бр : 0,45 ", "Eggs", "3", "br", "0,45", false},
		{"Salt: sea:10:gr:1.20", "Salt: sea", "10", "g", "1.20", false},
		{"Water:1::0", "Water", "1", "kg", "0", false},
		{"Flour:500:g", "", "", "", "", true},
		{"Flour:500:cup:1", "", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ing, err := parseIngredient(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIngredient(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ing.Name != tt.name || ing.Quantity != tt.quantity || string(ing.Unit) != tt.unit || ing.Price != tt.price {
				t.Errorf("parseIngredient(%q) = %+v", tt.in, ing)
			}
		})
	}
}

func TestConfigFlag(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(cfg, []byte("[defaults]\nservings = \"2\"\ncurrency = \"EUR\"\n[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--config", cfg, "calc", "-i", "Rice:1:kg:3", "--format", "json")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	reps := decodeReports(t, out)
	if len(reps) != 1 {
		t.Fatalf("got %d reports", len(reps))
	}
	if reps[0].Currency != "EUR" || !approx(reps[0].Summary.CostPerServing, 1.5) {
		t.Errorf("report = currency %q, per serving %v", reps[0].Currency, reps[0].Summary.CostPerServing)
	}
}

func TestConfigFlagInvalid(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"tape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", cfg, "examples"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestExamples(t *testing.T) {
	isolate(t)
	out, err := run(t, "examples")
	if err != nil {
		t.Fatalf("examples: %v", err)
	}
	for _, want := range []string{"Shopska salad", "Moussaka", "6.91 лв."} {
		if !strings.Contains(out, want) {
			t.Errorf("examples output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "examples", "show", "moussaka", "--format", "toml")
	if err != nil {
		t.Fatalf("examples show: %v", err)
	}
	rec, err := recipeio.ReadRecipe(strings.NewReader(out), recipeio.FormatTOML)
	if err != nil {
		t.Fatalf("shown recipe does not parse: %v\n%s", err, out)
	}
	if rec.Name != "Moussaka" || len(rec.Ingredients) != 8 {
		t.Errorf("shown recipe = %q with %d ingredients", rec.Name, len(rec.Ingredients))
	}

	out, err = run(t, "examples", "show", "Shopska salad")
	if err != nil {
		t.Fatalf("examples show table: %v", err)
	}
	if !strings.Contains(out, "1.66 лв.") {
		t.Errorf("table should show the price with VAT:\n%s", out)
	}

	if _, err := run(t, "examples", "show", "Lasagne"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown example error = %v, want NOT_FOUND", err)
	}
}

func TestTheme(t *testing.T) {
	isolate(t)
	get := func() string {
		t.Helper()
		out, err := run(t, "theme", "get")
		if err != nil {
			t.Fatalf("theme get: %v", err)
		}
		return strings.TrimSpace(out)
	}

	if got := get(); got != "light" {
		t.Errorf("initial theme = %q, want light", got)
	}
	if _, err := run(t, "theme", "set", "DARK"); err != nil {
		t.Fatalf("theme set: %v", err)
	}
	if got := get(); got != "dark" {
		t.Errorf("theme after set = %q, want dark", got)
	}
	if _, err := run(t, "theme", "toggle"); err != nil {
		t.Fatalf("theme toggle: %v", err)
	}
	out, err := run(t, "theme")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if strings.TrimSpace(out) != "light" {
		t.Errorf("bare theme command = %q, want light", out)
	}
	if _, err := run(t, "theme", "set", "purple"); !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("invalid theme error = %v, want INVALID_THEME", err)
	}
}

func TestChartFiles(t *testing.T) {
	dir := isolate(t)
	single := filepath.Join(dir, "salad.svg")
	if _, err := run(t, "chart", "--example", "Shopska salad", "-o", single); err != nil {
		t.Fatalf("chart: %v", err)
	}
	data, err := os.ReadFile(single)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("svg output starts with %q", data[:min(len(data), 20)])
	}

	base := filepath.Join(dir, "multi")
	if _, err := run(t, "chart", "--example", "Moussaka", "-f", "svg,dot,json", "-o", base, "--theme", "dark"); err != nil {
		t.Fatalf("chart multi: %v", err)
	}
	for _, ext := range []string{".svg", ".dot", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", base+ext, err)
		}
	}
}

func TestChartStdout(t *testing.T) {
	isolate(t)
	out, err := run(t, "chart", "-i", "Flour:1:kg:3", "-i", "Sugar:1:kg:1", "-f", "json", "-o", "-")
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	var segments []struct {
		Label string  `json:"label"`
		Share float64 `json:"share"`
	}
	if err := json.Unmarshal([]byte(out), &segments); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(segments) != 2 || !approx(segments[0].Share, 0.75) || !approx(segments[1].Share, 0.25) {
		t.Errorf("segments = %+v", segments)
	}
}

func TestChartErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"chart", "--example", "Moussaka", "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"bad theme", []string{"chart", "--example", "Moussaka", "--theme", "purple"}, errors.ErrCodeInvalidTheme},
		{"stdout with many formats", []string{"chart", "--example", "Moussaka", "-f", "svg,json", "-o", "-"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "recipes/salad.toml", "recipes/salad"},
		{"out.svg", "salad.toml", "out"},
		{"out.png", "salad.toml", "out"},
		{"out", "salad.toml", "out"},
		{"out.txt", "salad.toml", "out.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	if _, err := run(t, "calc", "--example", "Moussaka"); err != nil {
		t.Fatalf("calc: %v", err)
	}
	if _, err := run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	again, err := run(t, "calc", "--example", "Moussaka")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !strings.Contains(again, iconFresh) {
		t.Errorf("calc after clear should not hit the cache:\n%s", again)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}
}
