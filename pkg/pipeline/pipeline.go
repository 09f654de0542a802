// Package pipeline provides the calculation pipeline shared by the CLI, the
// TUI and the HTTP API.
//
// This package runs calculate → render with caching. By centralizing this
// logic, every entry point memoizes the same way and fires the same
// observability hooks.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Calculate: aggregate the ingredient rows into a [cost.Summary] and a
//     per-ingredient breakdown
//  2. Render: draw the breakdown as a chart in one or more formats
//
// Each stage can be run independently.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Calculate(ctx, pipeline.FromRecipe(r))
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.Render(ctx, res, []string{"svg"}, chart.Options{})
package pipeline

import (
	"time"

	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/recipe"
	"github.com/matzehuels/recipecost/pkg/render/chart"
)

// Request is the input of [Runner.Calculate].
type Request struct {
	Ingredients []cost.Ingredient `json:"ingredients"`
	Settings    cost.Settings     `json:"settings"`

	// Refresh skips the cache read but still stores the fresh result.
	Refresh bool `json:"refresh,omitempty"`
}

// FromRecipe builds a request from an editable recipe.
func FromRecipe(r *recipe.Recipe) Request {
	return Request{
		Ingredients: r.Ingredients,
		Settings:    r.Settings,
	}
}

// Result contains the outputs of a calculation.
type Result struct {
	// Summary holds the aggregate figures.
	Summary cost.Summary `json:"summary"`

	// Slices is the per-ingredient breakdown, in row order.
	Slices []cost.Slice `json:"slices"`

	// Key is the cache key of this result; chart keys derive from it.
	Key string `json:"-"`

	// CacheHit reports whether Summary and Slices came from the cache.
	CacheHit bool `json:"-"`

	// Stats contains timing information.
	Stats Stats `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	CalcTime   time.Duration
	RenderTime time.Duration
}

// cached is the stored form of a Result.
type cached struct {
	Summary cost.Summary `json:"summary"`
	Slices  []cost.Slice `json:"slices"`
}

// ValidateFormats checks that all formats are valid chart formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := chart.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
