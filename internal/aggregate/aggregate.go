// Package aggregate derives view-ready values from record lists: totals,
// per-category sums, percentage shares, and time-ordered series. Everything
// here is pure and synchronous; empty input yields neutral results, never a
// panic.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Sum accumulates value(r) across records. Empty input sums to 0.
func Sum[T any](records []T, value func(T) float64) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(value(r)))
	}
	f, _ := total.Float64()
	return f
}

// GroupedTotals accumulates per-key sums while remembering first-occurrence
// key order, so equal inputs always produce equal output order.
type GroupedTotals struct {
	keys   []string
	totals map[string]float64
}

// Add accumulates v under key.
func (g *GroupedTotals) Add(key string, v float64) {
	if g.totals == nil {
		g.totals = make(map[string]float64)
	}
	if _, seen := g.totals[key]; !seen {
		g.keys = append(g.keys, key)
	}
	g.totals[key] += v
}

// Keys returns the keys in first-occurrence order.
func (g *GroupedTotals) Keys() []string {
	return g.keys
}

// Get returns the accumulated total for key.
func (g *GroupedTotals) Get(key string) float64 {
	return g.totals[key]
}

// Total returns the sum of all accumulated values.
func (g *GroupedTotals) Total() float64 {
	total := 0.0
	for _, k := range g.keys {
		total += g.totals[k]
	}
	return total
}

// Len returns the number of distinct keys.
func (g *GroupedTotals) Len() int {
	return len(g.keys)
}

// GroupSum accumulates value(r) per distinct key(r).
func GroupSum[T any](records []T, key func(T) string, value func(T) float64) *GroupedTotals {
	g := &GroupedTotals{}
	for _, r := range records {
		g.Add(key(r), value(r))
	}
	return g
}

// Share is one key's rounded percentage of a grouped total.
type Share struct {
	Key   string
	Value int
}

// PercentShares replaces each grouped value with its rounded percentage of
// the overall total. A zero total yields all-zero shares rather than a
// division by zero.
func PercentShares(g *GroupedTotals) []Share {
	total := decimal.NewFromFloat(g.Total())
	shares := make([]Share, 0, g.Len())

	for _, k := range g.Keys() {
		pct := 0
		if !total.IsZero() {
			pct = int(decimal.NewFromFloat(g.Get(k)).
				Div(total).
				Mul(decimal.NewFromInt(100)).
				Round(0).
				IntPart())
		}
		shares = append(shares, Share{Key: k, Value: pct})
	}
	return shares
}

// SortByDateAscending returns a stably sorted copy of records ordered by their
// YYYY-MM-DD date field, oldest first. Unparseable dates sort first.
func SortByDateAscending[T any](records []T, date func(T) string) []T {
	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return parseDay(date(out[i])).Before(parseDay(date(out[j])))
	})
	return out
}

// parseDay parses a YYYY-MM-DD string, returning the zero time on failure.
func parseDay(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
