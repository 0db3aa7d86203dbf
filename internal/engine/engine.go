// Package engine implements the allocation engine behind the transfer
// suggestion system: per-article donor/receiver classification, priority
// ordering, and greedy matching under mode-specific thresholds and group
// restrictions. The engine is a pure function of its input dataset and the
// selected mode; it holds no state between runs and performs no I/O.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

// Engine generates transfer recommendations. Articles are independent, so
// they are matched concurrently and merged back in article order to keep
// output deterministic.
type Engine struct {
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds how many articles are matched concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate computes the full recommendation list for the dataset under the
// given mode. The input records are not modified; two calls with identical
// input produce identical output, element for element.
func (e *Engine) Generate(ctx context.Context, records []domain.InventoryRecord, mode domain.Mode) ([]domain.TransferRecommendation, error) {
	rules, ok := rulesByMode[mode]
	if !ok {
		return nil, fmt.Errorf("unknown transfer mode %q", mode)
	}

	groups := groupByArticle(records)
	articles := make([]string, 0, len(groups))
	for article := range groups {
		articles = append(articles, article)
	}
	sort.Strings(articles)

	// One result slot per article; workers never share output state.
	batches := make([][]domain.TransferRecommendation, len(articles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, article := range articles {
		i, article := i, article
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch, err := matchArticle(groups[article], rules)
			if err != nil {
				return err
			}
			batches[i] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var recs []domain.TransferRecommendation
	for _, batch := range batches {
		recs = append(recs, batch...)
	}
	return recs, nil
}

// GenerateRecommendations runs a default Engine over the dataset. It is the
// plain function form of Engine.Generate for callers that need no tuning.
func GenerateRecommendations(records []domain.InventoryRecord, mode domain.Mode) ([]domain.TransferRecommendation, error) {
	return New().Generate(context.Background(), records, mode)
}

func groupByArticle(records []domain.InventoryRecord) map[string][]*domain.InventoryRecord {
	groups := make(map[string][]*domain.InventoryRecord)
	for i := range records {
		rec := &records[i]
		groups[rec.Article] = append(groups[rec.Article], rec)
	}
	return groups
}
