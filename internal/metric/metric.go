// Package metric compiles user-supplied weighted edit operation costs
// (substitution, insertion, deletion, adjacent transposition) into flat
// lookup tables fast enough to consult on every cell of the approximate
// search DP table.
package metric

import "github.com/pkg/errors"

// defaultCost is the cost of any substitution, insertion, or deletion not
// explicitly overridden by a rule.
const defaultCost = 1.0

// Metric is a compiled set of per-byte edit costs. Whether transposition is
// actually used during a search is a per-call decision (search.Options.
// AllowTranspose), not a property of the compiled Metric: a Metric always
// carries transpose costs, so the same compiled Metric serves both
// transpose-enabled and transpose-disabled searches.
type Metric struct {
	sub       [256][256]float64
	insert    [256]float64
	delete    [256]float64
	transpose [256][256]float64

	transposeExplicit [256][256]bool
	hasTranspose      bool
}

// SubCost returns the cost of substituting from with to. Identity
// substitution (from == to) always costs 0.
func (m *Metric) SubCost(from, to byte) float64 { return m.sub[from][to] }

// InsertCost returns the cost of inserting c into the source side.
func (m *Metric) InsertCost(c byte) float64 { return m.insert[c] }

// DeleteCost returns the cost of deleting c from the source side.
func (m *Metric) DeleteCost(c byte) float64 { return m.delete[c] }

// TransposeCost returns the cost of swapping adjacent bytes first, second
// (i.e. "firstsecond" -> "secondfirst"). When the rule set names other
// transpose pairs but not this one, the pair costs the same as undoing it
// with two substitutions, SubCost(first,second)+SubCost(second,first): no
// swap bonus. A metric with no transpose rules at all charges the generic
// per-swap default of one edit, so a plain swap under the default metric
// costs 1, not 2.
func (m *Metric) TransposeCost(first, second byte) float64 {
	if m.transposeExplicit[first][second] {
		return m.transpose[first][second]
	}
	if m.hasTranspose {
		return m.sub[first][second] + m.sub[second][first]
	}
	return defaultCost
}

// Default returns the unweighted Levenshtein metric: substitution,
// insertion, and deletion all cost 1 (identity substitution costs 0), and
// transposition (if enabled by the caller at search time) costs 1 per swap.
func Default() *Metric {
	m, err := Compile(nil)
	if err != nil {
		// Compile(nil) cannot fail: no rules to contradict.
		panic(errors.Wrap(err, "metric: Default"))
	}
	return m
}
