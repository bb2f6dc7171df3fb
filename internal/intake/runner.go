package intake

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/fakecheck/internal/model"
)

// TextChecker scores a single news item.
type TextChecker interface {
	CheckText(ctx context.Context, req model.CheckRequest) model.Verdict
}

// Result pairs an input item with its verdict.
type Result struct {
	Index   int                `json:"index"`
	Request model.CheckRequest `json:"request"`
	Verdict model.Verdict      `json:"verdict"`
}

// Run checks items with at most concurrency checks in flight and returns
// results in input order. Items not started before ctx is done are left out,
// as are items whose check was still running when ctx ended.
func Run(ctx context.Context, checker TextChecker, items []model.CheckRequest, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}

	slots := make([]*Result, len(items))
	var done atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for i, item := range items {
		if ctx.Err() != nil {
			break
		}
		i, item := i, item
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			v := checker.CheckText(ctx, item)
			if ctx.Err() != nil {
				return nil
			}
			slots[i] = &Result{Index: i, Request: item, Verdict: v}
			done.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, 0, len(items))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	zap.L().Info("intake: batch complete",
		zap.Int("total", len(items)),
		zap.Int64("checked", done.Load()),
	)
	return results
}
