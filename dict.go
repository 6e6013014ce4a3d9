package simtrie

import (
	"bytes"
	"io"
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/dawgo/simtrie/internal/dawg"
	"github.com/dawgo/simtrie/search"
)

// Item is a (key, value) pair returned by Dict.Items.
type Item struct {
	Key   []byte
	Value *big.Int
}

// Dict is a Set that additionally associates each key with a non-negative
// integer of unbounded width. Values round-trip exactly regardless of
// magnitude: internally they are stored as the big-endian byte sequence
// math/big.Int.Bytes() produces, never narrowed to a machine int.
type Dict struct {
	set *Set
}

// Pair is one (key, value) input to NewDict.
type Pair struct {
	Key   []byte
	Value *big.Int
}

// NewDict builds a Dict from pairs, which must already be in strictly
// ascending key order unless sorted is false. Every value must be
// non-negative; a negative value is reported as ErrInvalidInput.
func NewDict(pairs []Pair, sorted bool) (*Dict, error) {
	entries := make([]dawg.Entry, len(pairs))
	for i, p := range pairs {
		if p.Value != nil && p.Value.Sign() < 0 {
			return nil, errors.Wrapf(ErrInvalidInput, "negative value for key %q", p.Key)
		}
		var v []byte
		if p.Value != nil {
			v = p.Value.Bytes()
		}
		entries[i] = dawg.Entry{Key: p.Key, Value: v}
	}
	root, err := build(entries, sorted, true)
	if err != nil {
		return nil, err
	}
	return &Dict{set: &Set{nav: dawg.NewNavigator(dawg.Encode(root, true))}}, nil
}

// NewDictFromMap builds a Dict from a map, sorting its keys internally so
// callers can pass an unordered mapping directly instead of pre-sorting it.
func NewDictFromMap(m map[string]*big.Int) (*Dict, error) {
	pairs := make([]Pair, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair{Key: []byte(k), Value: v})
	}
	sortPairs(pairs)
	return NewDict(pairs, true)
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		return bytes.Compare(pairs[i].Key, pairs[j].Key) < 0
	})
}

// Contains reports whether key is a member of the dictionary.
func (d *Dict) Contains(key []byte) bool { return d.set.Contains(key) }

// Get returns the value associated with key, or ErrMissingKey if key is not
// present.
func (d *Dict) Get(key []byte) (*big.Int, error) {
	state := d.set.navigator().RootState()
	for _, c := range key {
		next, ok := d.set.navigator().Transition(state, c)
		if !ok {
			return nil, errors.Wrapf(ErrMissingKey, "%q", key)
		}
		state = next
	}
	if !d.set.navigator().IsFinal(state) {
		return nil, errors.Wrapf(ErrMissingKey, "%q", key)
	}
	return new(big.Int).SetBytes(d.set.navigator().Value(state)), nil
}

// Keys returns every key starting with prefix, ascending.
func (d *Dict) Keys(prefix []byte) [][]byte { return d.set.Keys(prefix) }

// Prefixes returns every key that is a prefix of s, ascending by length.
func (d *Dict) Prefixes(str []byte) [][]byte { return d.set.Prefixes(str) }

// Items returns every (key, value) pair whose key starts with prefix,
// ascending by key.
func (d *Dict) Items(prefix []byte) []Item {
	state, ok := d.set.walk(prefix)
	if !ok {
		return nil
	}
	var out []Item
	d.set.collect(state, append([]byte(nil), prefix...), func(key []byte, st dawg.State) {
		out = append(out, Item{
			Key:   append([]byte(nil), key...),
			Value: new(big.Int).SetBytes(d.set.navigator().Value(st)),
		})
	})
	return out
}

// Similar returns every key within budget of query, paired with its cost;
// values for each match can be retrieved via Get.
func (d *Dict) Similar(query []byte, budget float64, m *Metric, allowTranspose bool, k *int) []search.Match {
	return d.set.Similar(query, budget, m, allowTranspose, k)
}

// ToBytes serializes the dictionary, with the value-table flag bit set.
func (d *Dict) ToBytes() []byte { return d.set.ToBytes() }

// Dump writes the dictionary's serialized form to w.
func (d *Dict) Dump(w io.Writer) error { return d.set.Dump(w) }

// FromBytesDict parses a Dict previously produced by ToBytes or Dump.
func FromBytesDict(data []byte) (*Dict, error) {
	s, err := FromBytes(data)
	if err != nil {
		return nil, err
	}
	if !s.navigator().HasValues {
		return nil, errors.Wrap(ErrParse, "image has no value table (built as a Set, not a Dict)")
	}
	return &Dict{set: s}, nil
}

// LoadDict reads a Dict previously written by Dump.
func LoadDict(r io.Reader) (*Dict, error) {
	s, err := Load(r)
	if err != nil {
		return nil, err
	}
	if !s.navigator().HasValues {
		return nil, errors.Wrap(ErrParse, "image has no value table (built as a Set, not a Dict)")
	}
	return &Dict{set: s}, nil
}
