package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/recipecost/pkg/cache"
	"github.com/matzehuels/recipecost/pkg/cost"
	"github.com/matzehuels/recipecost/pkg/observability"
	"github.com/matzehuels/recipecost/pkg/render/chart"
)

// Cache key types reported to observability hooks.
const (
	keyTypeSummary = "summary"
	keyTypeChart   = "chart"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the lifetime of stored summaries and charts.
	// Zero uses cache.TTLSummary and cache.TTLChart.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Calculate aggregates the request's rows, serving from the cache when an
// identical request was seen before.
func (r *Runner) Calculate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := len(req.Ingredients)
	hooks := observability.Pipeline()
	hooks.OnCalculateStart(ctx, rows)
	start := time.Now()

	key := r.Keyer.SummaryKey(req.Ingredients, req.Settings)
	res := &Result{Key: key, Stats: Stats{Rows: rows}}

	if !req.Refresh {
		if c, ok := r.lookup(ctx, key); ok {
			res.Summary, res.Slices, res.CacheHit = c.Summary, c.Slices, true
			res.Stats.CalcTime = time.Since(start)
			hooks.OnCalculateComplete(ctx, rows, true, res.Stats.CalcTime, nil)
			r.Logger.Debug("summary from cache", "rows", rows)
			return res, nil
		}
	}

	res.Summary = cost.Aggregate(req.Ingredients, req.Settings)
	res.Slices = cost.Breakdown(req.Ingredients)
	r.store(ctx, key, cached{Summary: res.Summary, Slices: res.Slices})

	res.Stats.CalcTime = time.Since(start)
	hooks.OnCalculateComplete(ctx, rows, false, res.Stats.CalcTime, nil)
	r.Logger.Debug("calculated", "rows", rows, "total", res.Summary.TotalCost, "duration", res.Stats.CalcTime)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cached, bool) {
	var c cached
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeSummary)
		return c, false
	}
	if err := json.Unmarshal(data, &c); err != nil {
		// Undecodable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, keyTypeSummary)
		return c, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeSummary)
	return c, true
}

func (r *Runner) store(ctx context.Context, key string, c cached) {
	data, err := json.Marshal(c)
	if err != nil {
		// Inf and NaN totals have no JSON form; they are simply not cached.
		r.Logger.Debug("summary not cacheable", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLSummary)); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeSummary, len(data))
}

// Render draws res as a chart in each format. It reports whether every
// artifact came from the cache.
func (r *Runner) Render(ctx context.Context, res *Result, formats []string, opts chart.Options) (map[string][]byte, bool, error) {
	if len(formats) == 0 {
		formats = []string{chart.FormatSVG}
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, false, err
	}
	opts = opts.WithDefaults()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(formats))
	allHit := true
	for _, format := range formats {
		key := r.Keyer.ChartKey(res.Key, cache.ChartKeyOpts{
			Format:   format,
			Theme:    string(opts.Theme),
			Width:    opts.Width,
			Height:   opts.Height,
			Legend:   opts.Legend,
			Currency: opts.Currency,
		})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeChart)
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeChart)
		allHit = false

		data, err := chart.Render(ctx, res.Slices, format, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLChart)); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeChart, len(data))
		}
	}

	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, formats, res.Stats.RenderTime, nil)
	r.Logger.Debug("rendered chart", "formats", formats, "cached", allHit, "duration", res.Stats.RenderTime)
	return artifacts, allHit, nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
