package metric

import "github.com/pkg/errors"

// ErrMalformedMetric is returned when a rule set is overlapping or
// internally contradictory.
var ErrMalformedMetric = errors.New("metric: malformed rule set")

// Rule is one user-supplied edit cost override, dispatched on the shape of
// its From/To operands:
//
//   - From == nil, len(To) == 1: insertion of To[0].
//   - len(From) == 1, To == nil: deletion of From[0].
//   - len(From) == 1, len(To) == 1: substitution of From[0] by To[0].
//   - len(From) == 2, len(To) == 2 and To is From reversed: adjacent
//     transposition of From[0] then From[1] into To[0] then To[1].
//
// Any other shape is rejected as malformed.
type Rule struct {
	From []byte
	To   []byte
	Cost float64
}

// Insert builds an insertion rule: inserting c costs cost.
func Insert(c byte, cost float64) Rule { return Rule{To: []byte{c}, Cost: cost} }

// Delete builds a deletion rule: deleting c costs cost.
func Delete(c byte, cost float64) Rule { return Rule{From: []byte{c}, Cost: cost} }

// Substitute builds a substitution rule: replacing from with to costs cost.
func Substitute(from, to byte, cost float64) Rule {
	return Rule{From: []byte{from}, To: []byte{to}, Cost: cost}
}

// Transpose builds an adjacent-transposition rule: "ab" -> "ba" costs cost.
func Transpose(a, b byte, cost float64) Rule {
	return Rule{From: []byte{a, b}, To: []byte{b, a}, Cost: cost}
}

// Compile validates and compiles rules into a Metric. Transpose rules are
// accepted and compiled regardless of whether any particular search enables
// transposition; that switch lives on the search call, not on the metric.
func Compile(rules []Rule) (*Metric, error) {
	m := &Metric{}

	for a := 0; a < 256; a++ {
		m.insert[a] = defaultCost
		m.delete[a] = defaultCost
		for b := 0; b < 256; b++ {
			if a == b {
				m.sub[a][b] = 0
			} else {
				m.sub[a][b] = defaultCost
			}
		}
	}

	seen := make(map[string]float64)
	for _, r := range rules {
		kind, key, cost, err := classify(r)
		if err != nil {
			return nil, err
		}
		if cost < 0 {
			return nil, errors.Wrapf(ErrMalformedMetric,
				"negative cost %v for rule %q -> %q", cost, r.From, r.To)
		}
		if kind == "sub" && r.From[0] == r.To[0] && cost != 0 {
			return nil, errors.Wrapf(ErrMalformedMetric,
				"identity substitution %q must cost 0, got %v", r.From, cost)
		}
		sig := kind + key
		if prior, ok := seen[sig]; ok && prior != cost {
			return nil, errors.Wrapf(ErrMalformedMetric,
				"conflicting costs %v and %v for rule %s", prior, cost, sig)
		}
		seen[sig] = cost

		switch kind {
		case "ins":
			m.insert[r.To[0]] = cost
		case "del":
			m.delete[r.From[0]] = cost
		case "sub":
			m.sub[r.From[0]][r.To[0]] = cost
		case "transpose":
			m.transpose[r.From[0]][r.From[1]] = cost
			m.transposeExplicit[r.From[0]][r.From[1]] = true
			m.hasTranspose = true
		}
	}
	return m, nil
}

func classify(r Rule) (kind string, key string, cost float64, err error) {
	switch {
	case len(r.From) == 0 && len(r.To) == 1:
		return "ins", string(r.To), r.Cost, nil
	case len(r.From) == 1 && len(r.To) == 0:
		return "del", string(r.From), r.Cost, nil
	case len(r.From) == 1 && len(r.To) == 1:
		return "sub", string(r.From) + string(r.To), r.Cost, nil
	case len(r.From) == 2 && len(r.To) == 2 && r.To[0] == r.From[1] && r.To[1] == r.From[0]:
		return "transpose", string(r.From), r.Cost, nil
	default:
		return "", "", 0, errors.Wrapf(ErrMalformedMetric, "rule %q -> %q is not a recognized shape", r.From, r.To)
	}
}
