// Package report runs batches of FOV queries and aggregates the results.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/shadowcast/fov"
)

// QueryEntry is one recorded FOV query.
type QueryEntry struct {
	Map          string
	Engine       fov.Engine
	Vantage      fov.Point
	Radius       int
	Visible      int           // tiles marked visible, origin included
	Elapsed      time.Duration // mean over the timed repeats
	RayAgreement float64       // share of visible tiles a centre ray also reaches
	Grid         []byte        // row-major visibility grid
}

// String formats the entry as a fixed-width log line.
//
//	[dense ] room         (5,3)    r=10  visible=36   agree=1.00  4.1µs
func (e QueryEntry) String() string {
	return fmt.Sprintf("[%-6s] %-12s %-8s r=%-3d visible=%-4d agree=%.2f  %s",
		e.Engine, e.Map, e.Vantage, e.Radius, e.Visible, e.RayAgreement, e.Elapsed)
}

// QueryLog collects query results in submission order.
type QueryLog struct {
	entries []QueryEntry
}

func NewQueryLog() *QueryLog {
	return &QueryLog{}
}

// Add records a new entry.
func (ql *QueryLog) Add(e QueryEntry) {
	ql.entries = append(ql.entries, e)
}

// Entries returns all recorded entries.
func (ql *QueryLog) Entries() []QueryEntry {
	return ql.entries
}

// Len returns the number of recorded entries.
func (ql *QueryLog) Len() int {
	return len(ql.entries)
}

// Filter returns entries matching the given map name and/or engine name.
// Pass empty string to match any value for that field.
func (ql *QueryLog) Filter(mapName, engine string) []QueryEntry {
	var out []QueryEntry
	for _, e := range ql.entries {
		if mapName != "" && e.Map != mapName {
			continue
		}
		if engine != "" && e.Engine.String() != engine {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountEngine returns how many entries were produced by engine.
func (ql *QueryLog) CountEngine(engine fov.Engine) int {
	return len(ql.Filter("", engine.String()))
}

// Lookup finds the entry for a map, engine and vantage.
func (ql *QueryLog) Lookup(mapName string, engine fov.Engine, vantage fov.Point) (QueryEntry, bool) {
	for _, e := range ql.entries {
		if e.Map == mapName && e.Engine == engine && e.Vantage == vantage {
			return e, true
		}
	}
	return QueryEntry{}, false
}

// Format returns the full log, one entry per line.
func (ql *QueryLog) Format() string {
	var sb strings.Builder
	for _, e := range ql.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
