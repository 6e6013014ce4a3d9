// Package simtrie implements a static string dictionary over a compact
// acyclic deterministic finite-state automaton (DAWG): exact membership and
// value lookup, lexicographic prefix enumeration, and weighted approximate
// ("fuzzy") lookup under a configurable edit-distance metric.
//
// Keys are arbitrary non-empty byte strings produced by encoding text in a
// fixed 8-bit encoding outside this package; simtrie compares and orders
// bytes only and never normalizes or decodes them.
package simtrie

import (
	"io"

	"github.com/pkg/errors"

	"github.com/dawgo/simtrie/internal/dawg"
	"github.com/dawgo/simtrie/search"
)

// Set is an immutable set of byte-string keys backed by a minimized DAWG.
// A built Set is safe for concurrent use by multiple readers; it must never
// be mutated after construction.
type Set struct {
	nav *dawg.Navigator
}

// emptyNavigator backs queries against the zero value: a Set that was never
// built or loaded answers every query as an empty dictionary instead of
// dereferencing a nil Navigator.
var emptyNavigator = dawg.NewNavigator(&dawg.Encoded{})

func (s *Set) navigator() *dawg.Navigator {
	if s == nil || s.nav == nil {
		return emptyNavigator
	}
	return s.nav
}

// NewSet builds a Set from keys, which must already be in strictly
// ascending byte order unless sorted is false, in which case NewSet buffers
// and sorts a copy internally. Duplicate keys, unsorted input (when sorted
// is true), and keys containing a null byte are reported as ErrInvalidInput.
func NewSet(keys [][]byte, sorted bool) (*Set, error) {
	entries := make([]dawg.Entry, len(keys))
	for i, k := range keys {
		entries[i] = dawg.Entry{Key: k}
	}
	root, err := build(entries, sorted, false)
	if err != nil {
		return nil, err
	}
	return &Set{nav: dawg.NewNavigator(dawg.Encode(root, false))}, nil
}

func build(entries []dawg.Entry, sorted, hasValues bool) (*dawg.Node, error) {
	var opts []dawg.Option
	if hasValues {
		opts = append(opts, dawg.WithValues())
	}
	var (
		root *dawg.Node
		err  error
	)
	if sorted {
		root, err = dawg.BuildSorted(entries, opts...)
	} else {
		root, err = dawg.BuildUnsorted(entries, opts...)
	}
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	return root, nil
}

// Contains reports whether key is a member of the set. A key containing a
// null byte is never a member, since the builder rejects null bytes in its
// input; the query simply fails to transition on the \x00 byte and Contains
// returns false.
func (s *Set) Contains(key []byte) bool {
	state := s.navigator().RootState()
	for _, c := range key {
		next, ok := s.navigator().Transition(state, c)
		if !ok {
			return false
		}
		state = next
	}
	return s.navigator().IsFinal(state)
}

// Keys returns, in ascending byte order, every key in the set that starts
// with prefix. An empty prefix enumerates every key.
func (s *Set) Keys(prefix []byte) [][]byte {
	state, ok := s.walk(prefix)
	if !ok {
		return nil
	}
	var out [][]byte
	s.collect(state, append([]byte(nil), prefix...), func(key []byte, _ dawg.State) {
		out = append(out, append([]byte(nil), key...))
	})
	return out
}

// Prefixes returns, in ascending length order, every key in the set that is
// a prefix of s. The empty key never matches: empty keys are rejected at
// build time (see DESIGN.md's resolution of the empty-key question), so no
// set contains one.
func (s *Set) Prefixes(str []byte) [][]byte {
	var out [][]byte
	state := s.navigator().RootState()
	for i, c := range str {
		next, ok := s.navigator().Transition(state, c)
		if !ok {
			break
		}
		state = next
		if s.navigator().IsFinal(state) {
			out = append(out, append([]byte(nil), str[:i+1]...))
		}
	}
	return out
}

// walk follows prefix from the root, returning the reached state, or
// (0, false) if prefix has no continuation in the automaton.
func (s *Set) walk(prefix []byte) (dawg.State, bool) {
	state := s.navigator().RootState()
	for _, c := range prefix {
		next, ok := s.navigator().Transition(state, c)
		if !ok {
			return 0, false
		}
		state = next
	}
	return state, true
}

// collect performs an ordered DFS from state, invoking emit with the
// accumulated byte path and the current state every time an accepting state
// is entered.
func (s *Set) collect(state dawg.State, path []byte, emit func([]byte, dawg.State)) {
	if s.navigator().IsFinal(state) {
		emit(path, state)
	}
	for c, child := range s.navigator().Outgoing(state) {
		path = append(path, c)
		s.collect(child, path, emit)
		path = path[:len(path)-1]
	}
}

// Similar returns every key within budget of query under metric (nil means
// the default unweighted Levenshtein metric), ordered by non-decreasing
// cost only when k is non-nil; see search.Similar for the streaming-vs-
// ranked contract.
func (s *Set) Similar(query []byte, budget float64, m *Metric, allowTranspose bool, k *int) []search.Match {
	return search.Similar(s.navigator(), query, budget, m, search.Options{AllowTranspose: allowTranspose, K: k})
}

// ToBytes serializes the set to the bit-exact on-disk format. Serialization
// is deterministic: encoding the same set twice yields byte-identical
// output.
func (s *Set) ToBytes() []byte {
	return encodeImage(navToEncoded(s.navigator()))
}

// FromBytes parses a Set previously produced by ToBytes or Dump. Malformed
// or truncated data is reported as ErrParse; it never panics.
func FromBytes(data []byte) (*Set, error) {
	enc, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return &Set{nav: dawg.NewNavigator(enc)}, nil
}

// Dump writes the set's serialized form to w.
func (s *Set) Dump(w io.Writer) error {
	_, err := w.Write(s.ToBytes())
	return errors.Wrap(err, "simtrie: dump")
}

// Load reads a Set previously written by Dump.
func Load(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "simtrie: load")
	}
	return FromBytes(data)
}

// navToEncoded reconstructs an Encoded view from a Navigator for
// re-serialization; Navigator and Encoded share the same underlying slices,
// so this does not copy.
func navToEncoded(n *dawg.Navigator) *dawg.Encoded {
	return &dawg.Encoded{Records: n.Records, Values: n.Values, HasValues: n.HasValues}
}

// Empty reports whether the set contains no keys at all.
func (s *Set) Empty() bool { return s.navigator().Empty() }
