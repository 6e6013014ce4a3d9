package dawg

import (
	"iter"
	"math"

	"golang.org/x/exp/slices"
)

// State identifies a position in the automaton: either Root (the virtual
// start state) or the index of the Record describing the edge that was
// followed to reach this state.
type State = uint32

// Root is the virtual start state. It has no Record of its own; its
// children occupy the first sibling run (record index 0) whenever the
// automaton is non-empty.
const Root State = math.MaxUint32 - 1

// linearScanThreshold is the longest sibling-run length for which Transition
// scans linearly; longer runs are binary-searched.
const linearScanThreshold = 8

// Navigator exposes read-only navigation primitives over an Encoded image.
// All operations are O(fan-out) or O(log fan-out) and allocate nothing
// beyond what the caller asks for (Outgoing's iterator).
type Navigator struct {
	Records   []Record
	Values    [][]byte
	HasValues bool
}

// NewNavigator wraps an already-encoded image for querying.
func NewNavigator(e *Encoded) *Navigator {
	return &Navigator{Records: e.Records, Values: e.Values, HasValues: e.HasValues}
}

// RootState returns the navigation cursor positioned at the virtual root.
func (n *Navigator) RootState() State { return Root }

// childrenBase returns the record index where state's children begin, or
// NoChildren if state accepts no further bytes.
func (n *Navigator) childrenBase(state State) uint32 {
	if state == Root {
		if len(n.Records) == 0 {
			return NoChildren
		}
		return 0
	}
	return n.Records[state].Target
}

// Transition follows a single byte from state, returning the resulting
// state and true, or (0, false) if no such edge exists.
func (n *Navigator) Transition(state State, c byte) (State, bool) {
	base := n.childrenBase(state)
	if base == NoChildren {
		return 0, false
	}
	end := base
	for !n.Records[end].Last {
		end++
	}
	run := n.Records[base : end+1]

	if len(run) <= linearScanThreshold {
		for i := range run {
			switch {
			case run[i].Label == c:
				return base + uint32(i), true
			case run[i].Label > c:
				return 0, false
			}
		}
		return 0, false
	}

	i, found := slices.BinarySearchFunc(run, c, func(r Record, target byte) int {
		return int(r.Label) - int(target)
	})
	if !found {
		return 0, false
	}
	return base + uint32(i), true
}

// IsFinal reports whether state is an accepting state.
func (n *Navigator) IsFinal(state State) bool {
	if state == Root {
		return false // empty keys are rejected at build time; see DESIGN.md
	}
	return n.Records[state].Final
}

// Value returns the decoded value bytes for an accepting state, or nil if
// the dictionary carries no values or state is not final.
func (n *Navigator) Value(state State) []byte {
	if !n.HasValues || !n.IsFinal(state) {
		return nil
	}
	return n.Values[n.Records[state].ValueIx]
}

// Outgoing yields (label, childState) pairs for state in ascending byte
// order.
func (n *Navigator) Outgoing(state State) iter.Seq2[byte, State] {
	return func(yield func(byte, State) bool) {
		base := n.childrenBase(state)
		if base == NoChildren {
			return
		}
		for i := base; ; i++ {
			r := &n.Records[i]
			if !yield(r.Label, i) {
				return
			}
			if r.Last {
				return
			}
		}
	}
}

// Empty reports whether the automaton accepts no keys at all.
func (n *Navigator) Empty() bool {
	return len(n.Records) == 0
}
