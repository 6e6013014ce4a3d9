// Package search implements weighted approximate-match search: a
// depth-first walk of the DAWG in lockstep with an incrementally extended
// edit-distance DP row, pruned by an admissible lower bound and a
// caller-supplied cost budget.
package search

import (
	"container/heap"
	"sort"

	"github.com/dawgo/simtrie/internal/dawg"
	"github.com/dawgo/simtrie/internal/metric"
)

// Match is one approximate result: a dictionary key and its weighted edit
// cost against the query.
type Match struct {
	Key  []byte
	Cost float64
}

// Options configures a Similar call.
type Options struct {
	// AllowTranspose enables Damerau-style adjacent-transposition edits.
	AllowTranspose bool
	// K, if non-nil, caps the result count to the K lowest-cost matches,
	// ties broken lexicographically by key. A nil K streams all matches
	// within budget in DFS order, with no cost ordering guaranteed.
	K *int
}

// Similar emits every key within budget of query under m. Degenerate
// cases: an empty query is scored by pure deletes; an empty dictionary
// yields no matches; budget 0 behaves as exact membership.
func Similar(nav *dawg.Navigator, query []byte, budget float64, m *metric.Metric, opts Options) []Match {
	if m == nil {
		m = metric.Default()
	}
	w := &walker{
		nav:            nav,
		query:          query,
		budget:         budget,
		metric:         m,
		allowTranspose: opts.AllowTranspose,
	}

	row0 := make([]float64, len(query)+1)
	for j := 1; j <= len(query); j++ {
		row0[j] = row0[j-1] + m.InsertCost(query[j-1])
	}

	w.dfs(nav.RootState(), row0, nil, 0, 0, nil)

	if opts.K == nil {
		return w.results
	}
	return topK(w.results, *opts.K)
}

type walker struct {
	nav            *dawg.Navigator
	query          []byte
	budget         float64
	metric         *metric.Metric
	allowTranspose bool
	results        []Match
}

// dfs visits state, whose row (length len(query)+1) already reflects the
// path taken to reach it. prevRow is the row at depth-1 (nil at depth 0) and
// prevLabel is the byte that produced row from prevRow, both needed for the
// transposition lookback.
func (w *walker) dfs(state dawg.State, row, prevRow []float64, prevLabel byte, depth int, path []byte) {
	n := len(w.query)
	if w.nav.IsFinal(state) && row[n] <= w.budget {
		key := make([]byte, len(path))
		copy(key, path)
		w.results = append(w.results, Match{Key: key, Cost: row[n]})
	}

	if minOf(row) > w.budget {
		return // admissible pruning: no completion from here can reach budget
	}

	for c, child := range w.nav.Outgoing(state) {
		newRow := w.extend(row, prevRow, prevLabel, c, depth)
		path = append(path, c)
		w.dfs(child, newRow, row, c, depth+1, path)
		path = path[:len(path)-1]
	}
}

func (w *walker) extend(r, rPrev []float64, prevLabel, c byte, depth int) []float64 {
	q := w.query
	n := len(q)
	rNew := make([]float64, n+1)
	rNew[0] = r[0] + w.metric.DeleteCost(c)

	for j := 1; j <= n; j++ {
		sub := r[j-1] + w.metric.SubCost(c, q[j-1])
		ins := rNew[j-1] + w.metric.InsertCost(q[j-1])
		del := r[j] + w.metric.DeleteCost(c)
		best := sub
		if ins < best {
			best = ins
		}
		if del < best {
			best = del
		}
		if w.allowTranspose && depth >= 1 && j >= 2 &&
			c == q[j-2] && prevLabel == q[j-1] {
			cand := rPrev[j-2] + w.metric.TransposeCost(prevLabel, c)
			if cand < best {
				best = cand
			}
		}
		rNew[j] = best
	}
	return rNew
}

func minOf(row []float64) float64 {
	best := row[0]
	for _, v := range row[1:] {
		if v < best {
			best = v
		}
	}
	return best
}

// topK keeps the K lowest-cost matches using a bounded max-heap keyed by
// (cost, key), then returns them sorted ascending by (cost, key).
func topK(all []Match, k int) []Match {
	if k <= 0 {
		return nil
	}
	h := &matchHeap{}
	for _, m := range all {
		if h.Len() < k {
			heap.Push(h, m)
			continue
		}
		if less(m, (*h)[0]) {
			(*h)[0] = m
			heap.Fix(h, 0)
		}
	}
	out := make([]Match, h.Len())
	copy(out, *h)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// less orders by (cost, key) ascending.
func less(a, b Match) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	return string(a.Key) < string(b.Key)
}

// matchHeap is a max-heap by (cost, key) so the worst of the current top-K
// sits at the root and can be evicted in O(log k).
type matchHeap []Match

func (h matchHeap) Len() int            { return len(h) }
func (h matchHeap) Less(i, j int) bool  { return less(h[j], h[i]) } // reversed: max-heap
func (h matchHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *matchHeap) Push(x interface{}) { *h = append(*h, x.(Match)) }
func (h *matchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
