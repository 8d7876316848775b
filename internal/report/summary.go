package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/shadowcast/fov"
)

// EngineSummary aggregates every query one engine answered.
type EngineSummary struct {
	Engine       fov.Engine
	Queries      int
	AvgVisible   float64
	AvgElapsed   time.Duration
	AvgAgreement float64
}

// Summary is the aggregate view of a query log.
type Summary struct {
	Engines []EngineSummary

	// Cross-engine comparison over queries both engines answered.
	Compared         int
	DifferingQueries int
	DifferingCells   int
}

// Summarize aggregates the log per engine and compares the dense and
// sparse grids for every vantage both engines were asked about.
func (ql *QueryLog) Summarize() Summary {
	var s Summary
	for _, engine := range fov.Engines() {
		es := EngineSummary{Engine: engine}
		var visible int
		var elapsed time.Duration
		var agreement float64
		for _, e := range ql.entries {
			if e.Engine != engine {
				continue
			}
			es.Queries++
			visible += e.Visible
			elapsed += e.Elapsed
			agreement += e.RayAgreement
		}
		if es.Queries == 0 {
			continue
		}
		es.AvgVisible = avg(visible, es.Queries)
		es.AvgElapsed = elapsed / time.Duration(es.Queries)
		es.AvgAgreement = agreement / float64(es.Queries)
		s.Engines = append(s.Engines, es)
	}

	for _, d := range ql.entries {
		if d.Engine != fov.EngineDense {
			continue
		}
		sp, ok := ql.Lookup(d.Map, fov.EngineSparse, d.Vantage)
		if !ok {
			continue
		}
		s.Compared++
		if n := differingCells(d.Grid, sp.Grid); n > 0 {
			s.DifferingQueries++
			s.DifferingCells += n
		}
	}
	return s
}

// String renders the summary in the key=value style of the CLI report.
func (s Summary) String() string {
	var sb strings.Builder
	for _, es := range s.Engines {
		fmt.Fprintf(&sb, "%-6s queries=%d avg_visible=%.1f avg_elapsed=%s avg_ray_agreement=%.3f\n",
			es.Engine, es.Queries, es.AvgVisible, es.AvgElapsed, es.AvgAgreement)
	}
	if s.Compared > 0 {
		fmt.Fprintf(&sb, "engine_comparison: compared=%d differing_queries=%d differing_cells=%d\n",
			s.Compared, s.DifferingQueries, s.DifferingCells)
	}
	return sb.String()
}

func differingCells(a, b []byte) int {
	n := 0
	for i := 0; i < len(a) || i < len(b); i++ {
		var va, vb bool
		if i < len(a) {
			va = a[i] != 0
		}
		if i < len(b) {
			vb = b[i] != 0
		}
		if va != vb {
			n++
		}
	}
	return n
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
