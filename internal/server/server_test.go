package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/recipecost/pkg/cache"
	"github.com/matzehuels/recipecost/pkg/errors"
	"github.com/matzehuels/recipecost/pkg/pipeline"
	"github.com/matzehuels/recipecost/pkg/prefs"
	"github.com/matzehuels/recipecost/pkg/recipe"
)

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	s := New(runner, prefs.NewMemoryStore(), logger)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)
	w := do(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get(HeaderRequestID) == "" {
		t.Error("responses should carry a request ID")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	_, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Errorf("request ID = %q, want abc-123", got)
	}
}

func TestCalculate(t *testing.T) {
	_, h := newTestServer(t)
	body := `{
		"ingredients": [
			{"name": "Flour", "quantity": 500, "unit": "g", "price": "2,00"},
			{"name": "", "quantity": "1", "unit": "l", "price": 3}
		],
		"servings": "2", "markup": 50, "vat": "20"
	}`
	w := do(t, h, http.MethodPost, "/api/v1/calculate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody[calculateResponse](t, w)

	if got.Formatted.TotalCost != "4.00 лв." || got.Formatted.CostPerServing != "2.00 лв." {
		t.Errorf("formatted = %+v", got.Formatted)
	}
	if got.Formatted.PriceBeforeVAT != "3.00 лв." || got.Formatted.PriceWithVAT != "3.60 лв." {
		t.Errorf("formatted = %+v", got.Formatted)
	}
	if len(got.Lines) != 2 || got.Lines[1].Label != "Unnamed" || got.Lines[0].Formatted != "1.00 лв." {
		t.Errorf("lines = %+v", got.Lines)
	}
	if got.Cached {
		t.Error("first request should not be cached")
	}

	w = do(t, h, http.MethodPost, "/api/v1/calculate", body)
	if again := decodeBody[calculateResponse](t, w); !again.Cached || again.Summary != got.Summary {
		t.Errorf("repeat request: cached=%v summary=%+v", again.Cached, again.Summary)
	}
}

func TestCalculateDefaultsAndGarbage(t *testing.T) {
	s, h := newTestServer(t)
	w := do(t, h, http.MethodPost, "/api/v1/calculate",
		`{"ingredients":[{"name":"x","quantity":"abc","unit":"kg","price":"5"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody[calculateResponse](t, w)
	if got.Summary.TotalCost != 0 {
		t.Errorf("unparseable quantity should cost 0, got %v", got.Summary.TotalCost)
	}
	if s.Defaults != recipe.DefaultSettings() {
		t.Errorf("server defaults = %+v", s.Defaults)
	}
}

func TestCalculateErrors(t *testing.T) {
	_, h := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"ingredient": []}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad unit", `{"ingredients":[{"unit":"cup"}]}`, http.StatusBadRequest, errors.ErrCodeInvalidUnit},
		{"object price", `{"ingredients":[{"price":{}}]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/v1/calculate", tt.body)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if got := decodeBody[errorBody](t, w); got.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestOverflowingCost(t *testing.T) {
	_, h := newTestServer(t)
	row := `{"name":"Saffron","quantity":"1e308","unit":"kg","price":"1e308"}`
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"calculate", "/api/v1/calculate", `{"ingredients":[` + row + `]}`},
		{"ingredient cost", "/api/v1/ingredient-cost", row},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.target, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %q)", w.Code, w.Body)
			}
			got := decodeBody[errorBody](t, w)
			if got.Code != errors.ErrCodeInvalidInput || !strings.Contains(got.Message, "out of range") {
				t.Errorf("error = %+v", got)
			}
		})
	}
}

func TestIngredientCost(t *testing.T) {
	_, h := newTestServer(t)
	w := do(t, h, http.MethodPost, "/api/v1/ingredient-cost",
		`{"name":"Parsley","quantity":"30","unit":"гр","price":"12"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	got := decodeBody[lineItem](t, w)
	if got.Formatted != "0.36 лв." {
		t.Errorf("formatted = %q, want 0.36 лв.", got.Formatted)
	}
}

func TestChart(t *testing.T) {
	_, h := newTestServer(t)
	body := `{"ingredients":[{"name":"Eggs","quantity":"2","unit":"br","price":"0.5"}]}`

	tests := []struct {
		query string
		ctype string
		want  string
	}{
		{"", "image/svg+xml", "<svg"},
		{"?format=dot", "text/vnd.graphviz", "digraph G"},
		{"?format=json&theme=dark", "application/json", `"color": "#FF6384"`},
	}
	for _, tt := range tests {
		w := do(t, h, http.MethodPost, "/api/v1/chart"+tt.query, body)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, body %s", tt.query, w.Code, w.Body)
			continue
		}
		if ct := w.Header().Get("Content-Type"); ct != tt.ctype {
			t.Errorf("%s: content type = %q, want %q", tt.query, ct, tt.ctype)
		}
		if !strings.Contains(w.Body.String(), tt.want) {
			t.Errorf("%s: body missing %q", tt.query, tt.want)
		}
	}
}

func TestChartUsesStoredTheme(t *testing.T) {
	s, h := newTestServer(t)
	if err := s.Prefs.SetTheme(context.Background(), prefs.Dark); err != nil {
		t.Fatal(err)
	}
	w := do(t, h, http.MethodPost, "/api/v1/chart", `{"ingredients":[{"name":"Eggs","quantity":"2","unit":"br","price":"0.5"}]}`)
	if !strings.Contains(w.Body.String(), "rgba(255, 255, 255, 0.85)") {
		t.Error("chart should follow the stored dark theme")
	}
}

func TestChartBadQuery(t *testing.T) {
	_, h := newTestServer(t)
	for _, q := range []string{"?format=pdf", "?theme=blue", "?legend=maybe", "?width=-1"} {
		w := do(t, h, http.MethodPost, "/api/v1/chart"+q, `{"ingredients":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
}

func TestExamples(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/v1/examples", "")
	list := decodeBody[[]recipe.Example](t, w)
	if len(list) != len(recipe.ExampleNames()) {
		t.Errorf("got %d examples", len(list))
	}

	w = do(t, h, http.MethodGet, "/api/v1/examples/moussaka", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ex := decodeBody[recipe.Example](t, w); ex.Name != "Moussaka" {
		t.Errorf("name = %q", ex.Name)
	}

	w = do(t, h, http.MethodGet, "/api/v1/examples/pizza", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown example status = %d, want 404", w.Code)
	}
}

func TestTheme(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, http.MethodGet, "/api/v1/preferences/theme", "")
	if got := decodeBody[themeBody](t, w); got.Theme != "light" {
		t.Errorf("default theme = %q", got.Theme)
	}

	w = do(t, h, http.MethodPut, "/api/v1/preferences/theme", `{"theme":"dark"}`)
	if got := decodeBody[themeBody](t, w); w.Code != http.StatusOK || got.Theme != "dark" {
		t.Errorf("PUT dark: status %d theme %q", w.Code, got.Theme)
	}

	w = do(t, h, http.MethodPost, "/api/v1/preferences/theme/toggle", "")
	if got := decodeBody[themeBody](t, w); got.Theme != "light" {
		t.Errorf("toggle from dark = %q", got.Theme)
	}

	w = do(t, h, http.MethodPut, "/api/v1/preferences/theme", `{"theme":"sepia"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid theme status = %d, want 400", w.Code)
	}
	if got := decodeBody[errorBody](t, w); got.Code != errors.ErrCodeInvalidTheme {
		t.Errorf("code = %q", got.Code)
	}
}

func TestNotFound(t *testing.T) {
	_, h := newTestServer(t)
	w := do(t, h, http.MethodGet, "/api/v2/anything", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d", w.Code)
	}
	if got := decodeBody[errorBody](t, w); got.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %q", got.Code)
	}
}

func TestBodyTooLarge(t *testing.T) {
	_, h := newTestServer(t)
	big := `{"ingredients":[{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}]}`
	w := do(t, h, http.MethodPost, "/api/v1/calculate", big)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRun(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
