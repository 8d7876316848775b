package report

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/shadowcast/fov"
	"github.com/Garsondee/shadowcast/internal/tilemap"
)

// Batch is a set of queries against one map.
type Batch struct {
	Map      string
	Tiles    *tilemap.TileMap
	Vantages []fov.Point
	Radius   int
	Engines  []fov.Engine
}

// Options controls how a batch is run.
type Options struct {
	Repeats int // timed runs per query, at least 1
	Workers int // concurrent queries, 0 = GOMAXPROCS
}

type job struct {
	engine  fov.Engine
	vantage fov.Point
}

// Evaluate runs every (vantage, engine) query of the batch concurrently and
// returns the results in vantage-major order. The tile map is only read, so
// it must not change until Evaluate returns.
func Evaluate(ctx context.Context, logger *zap.Logger, b Batch, opts Options) (*QueryLog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if b.Tiles == nil {
		return nil, fmt.Errorf("evaluate %s: no tile map", b.Map)
	}
	if opts.Repeats < 1 {
		opts.Repeats = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	jobs := make([]job, 0, len(b.Vantages)*len(b.Engines))
	for _, v := range b.Vantages {
		for _, e := range b.Engines {
			jobs = append(jobs, job{engine: e, vantage: v})
		}
	}
	results := make([]QueryEntry, len(jobs))

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := runQuery(b, j, opts.Repeats)
			if err != nil {
				return fmt.Errorf("%s %s from %v: %w", b.Map, j.engine, j.vantage, err)
			}
			logger.Debug("query",
				zap.String("map", b.Map),
				zap.Stringer("engine", j.engine),
				zap.Stringer("vantage", j.vantage),
				zap.Int("visible", entry.Visible),
				zap.Duration("elapsed", entry.Elapsed),
			)
			results[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ql := NewQueryLog()
	for _, e := range results {
		ql.Add(e)
	}
	logger.Info("batch evaluated",
		zap.String("map", b.Map),
		zap.Int("queries", len(jobs)),
		zap.Int("repeats", opts.Repeats),
		zap.Duration("wall", time.Since(start)),
	)
	return ql, nil
}

func runQuery(b Batch, j job, repeats int) (QueryEntry, error) {
	var vis []byte
	var total time.Duration
	for r := 0; r < repeats; r++ {
		t0 := time.Now()
		grid, err := b.Tiles.Visible(j.engine, j.vantage, b.Radius)
		total += time.Since(t0)
		if err != nil {
			return QueryEntry{}, err
		}
		vis = grid
	}
	return QueryEntry{
		Map:          b.Map,
		Engine:       j.engine,
		Vantage:      j.vantage,
		Radius:       b.Radius,
		Visible:      countVisible(vis),
		Elapsed:      total / time.Duration(repeats),
		RayAgreement: b.Tiles.RayAgreement(j.vantage, vis),
		Grid:         vis,
	}, nil
}

func countVisible(vis []byte) int {
	n := 0
	for _, v := range vis {
		if v != 0 {
			n++
		}
	}
	return n
}
