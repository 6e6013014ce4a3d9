package simtrie

import "github.com/dawgo/simtrie/internal/metric"

// Metric is a compiled table of weighted edit costs consumed by Similar.
// Build one with NewMetric; a nil Metric means the default unweighted
// Levenshtein costs (insert, delete, substitute 1; identity 0).
type Metric = metric.Metric

// MetricRule is one user-supplied cost override. Use the rule constructors
// below rather than filling the struct by hand.
type MetricRule = metric.Rule

// InsertRule makes inserting c cost cost.
func InsertRule(c byte, cost float64) MetricRule { return metric.Insert(c, cost) }

// DeleteRule makes deleting c cost cost.
func DeleteRule(c byte, cost float64) MetricRule { return metric.Delete(c, cost) }

// SubstituteRule makes replacing from with to cost cost.
func SubstituteRule(from, to byte, cost float64) MetricRule {
	return metric.Substitute(from, to, cost)
}

// TransposeRule makes swapping adjacent a, b into b, a cost cost.
func TransposeRule(a, b byte, cost float64) MetricRule { return metric.Transpose(a, b, cost) }

// metricCache memoizes compiled rule sets so callers that rebuild the same
// Metric per query (a common pattern in request handlers) don't pay for the
// table fill each time.
var metricCache = metric.NewCache()

// NewMetric compiles rules into a Metric. Contradictory or malformed rules
// are reported as ErrMalformedMetric.
func NewMetric(rules ...MetricRule) (*Metric, error) {
	return metricCache.Compile(rules)
}

// DefaultMetric returns the unweighted Levenshtein metric NewMetric()
// (no rules) would produce.
func DefaultMetric() *Metric { return metric.Default() }
