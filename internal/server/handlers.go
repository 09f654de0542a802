package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/recipecost/pkg/buildinfo"
	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/errors"
	recipeio "github.com/matzehuels/recipecost/pkg/io"
	"github.com/matzehuels/recipecost/pkg/pipeline"
	"github.com/matzehuels/recipecost/pkg/prefs"
	"github.com/matzehuels/recipecost/pkg/recipe"
	"github.com/matzehuels/recipecost/pkg/render/chart"
)

// ingredientBody is an ingredient row as sent by clients.
type ingredientBody struct {
	Name     recipeio.Text `json:"name"`
	Quantity recipeio.Text `json:"quantity"`
	Unit     string        `json:"unit"`
	Price    recipeio.Text `json:"price"`
}

func (b ingredientBody) toIngredient(row int) (cost.Ingredient, error) {
	u, err := cost.ParseUnit(b.Unit)
	if err != nil {
		return cost.Ingredient{}, errors.Wrap(errors.ErrCodeInvalidUnit, err, "ingredient %d: %s", row+1, errors.UserMessage(err))
	}
	return cost.Ingredient{
		Name:     string(b.Name),
		Quantity: string(b.Quantity),
		Unit:     u,
		Price:    string(b.Price),
	}, nil
}

// calculateBody is the request of /calculate and /chart. Settings left out
// take the server defaults.
type calculateBody struct {
	Ingredients []ingredientBody `json:"ingredients"`
	Servings    *recipeio.Text   `json:"servings"`
	Markup      *recipeio.Text   `json:"markup"`
	VAT         *recipeio.Text   `json:"vat"`
	Refresh     bool             `json:"refresh"`
}

func (s *Server) toRequest(b calculateBody) (pipeline.Request, error) {
	req := pipeline.Request{Settings: s.Defaults, Refresh: b.Refresh}
	for i, ib := range b.Ingredients {
		ing, err := ib.toIngredient(i)
		if err != nil {
			return req, err
		}
		req.Ingredients = append(req.Ingredients, ing)
	}
	if b.Servings != nil {
		req.Settings.Servings = string(*b.Servings)
	}
	if b.Markup != nil {
		req.Settings.MarkupPercent = string(*b.Markup)
	}
	if b.VAT != nil {
		req.Settings.VATPercent = string(*b.VAT)
	}
	return req, nil
}

type formattedSummary struct {
	TotalCost      string `json:"total_cost"`
	CostPerServing string `json:"cost_per_serving"`
	PriceBeforeVAT string `json:"price_before_vat"`
	PriceWithVAT   string `json:"price_with_vat"`
}

type lineItem struct {
	Label     string  `json:"label"`
	Cost      float64 `json:"cost"`
	Formatted string  `json:"formatted"`
}

type calculateResponse struct {
	Summary   cost.Summary     `json:"summary"`
	Formatted formattedSummary `json:"formatted"`
	Lines     []lineItem       `json:"lines"`
	Cached    bool             `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var body calculateBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := s.toRequest(body)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Runner.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	sum := res.Summary
	out := calculateResponse{
		Summary: sum,
		Formatted: formattedSummary{
			TotalCost:      cost.FormatCurrency(sum.TotalCost, s.Currency),
			CostPerServing: cost.FormatCurrency(sum.CostPerServing, s.Currency),
			PriceBeforeVAT: cost.FormatCurrency(sum.PriceBeforeVAT, s.Currency),
			PriceWithVAT:   cost.FormatCurrency(sum.PriceWithVAT, s.Currency),
		},
		Lines:  make([]lineItem, len(res.Slices)),
		Cached: res.CacheHit,
	}
	for i, sl := range res.Slices {
		out.Lines[i] = lineItem{Label: sl.Label, Cost: sl.Cost, Formatted: cost.FormatCurrency(sl.Cost, s.Currency)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleIngredientCost(w http.ResponseWriter, r *http.Request) {
	var body ingredientBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	ing, err := body.toIngredient(0)
	if err != nil {
		writeError(w, err)
		return
	}
	c := cost.IngredientCost(ing)
	writeJSON(w, http.StatusOK, lineItem{Label: ing.Name, Cost: c, Formatted: cost.FormatCurrency(c, s.Currency)})
}

var contentTypes = map[string]string{
	chart.FormatSVG:  "image/svg+xml",
	chart.FormatDOT:  "text/vnd.graphviz",
	chart.FormatPNG:  "image/png",
	chart.FormatJSON: "application/json",
}

// handleChart renders the breakdown. Query parameters: format (default
// svg), theme (default: stored preference), legend (default true), width
// and height.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = chart.FormatSVG
	}
	if err := chart.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.chartOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body calculateBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	req, err := s.toRequest(body)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.Runner.Calculate(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	artifacts, _, err := s.Runner.Render(r.Context(), res, []string{format}, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) chartOptions(r *http.Request) (chart.Options, error) {
	q := r.URL.Query()
	opts := chart.Options{Legend: true, Currency: s.Currency}

	if v := q.Get("theme"); v != "" {
		t, err := prefs.ParseTheme(v)
		if err != nil {
			return opts, err
		}
		opts.Theme = t
	} else {
		t, err := s.Prefs.Theme(r.Context())
		if err != nil {
			return opts, err
		}
		opts.Theme = t
	}
	if v := q.Get("legend"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "legend must be true or false")
		}
		opts.Legend = b
	}
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 || f > 10000 {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be a number between 0 and 10000", name)
			}
			*dst = f
		}
	}
	return opts, nil
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recipe.Examples())
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ex, ok := recipe.FindExample(name)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no example named %q", name))
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.Prefs.Theme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := decode(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	t, err := prefs.ParseTheme(body.Theme)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Prefs.SetTheme(r.Context(), t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := prefs.Toggle(r.Context(), s.Prefs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, themeBody{Theme: string(t)})
}
