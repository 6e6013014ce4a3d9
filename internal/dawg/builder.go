package dawg

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
)

// ErrUnsorted, ErrDuplicateKey, ErrNullByte, and ErrEmptyKey are the
// invalid-input conditions a Builder can report; callers compare with
// errors.Is.
var (
	ErrUnsorted     = errors.New("dawg: keys are not in strictly ascending order")
	ErrDuplicateKey = errors.New("dawg: duplicate key")
	ErrNullByte     = errors.New("dawg: key contains a null byte")
	ErrEmptyKey     = errors.New("dawg: empty key")
)

// Entry is one (key, value?) pair fed to a Builder. Value is nil for
// set-only dictionaries.
type Entry struct {
	Key   []byte
	Value []byte
}

// Builder implements Daciuk-style incremental minimization: keys are
// consumed one at a time, in ascending byte order, and the builder keeps a
// "current path" of not-yet-finalized nodes corresponding to the previously
// inserted key. It is not reentrant and must not be shared across
// goroutines.
type Builder struct {
	reg  *register
	root *Node

	path    []*Node // path[0] == root; path[i+1] is reached via prevKey[i]
	prevKey []byte

	hasValues bool
	started   bool
	done      bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithValues declares that every inserted key carries a value.
func WithValues() Option {
	return func(b *Builder) { b.hasValues = true }
}

// NewBuilder returns a Builder ready to accept keys in strictly ascending
// order via Add.
func NewBuilder(opts ...Option) *Builder {
	root := &Node{}
	b := &Builder{
		reg:  newRegister(),
		root: root,
		path: []*Node{root},
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Add inserts the next (key, value) pair. Keys must arrive in strictly
// ascending byte order with no duplicates and no embedded null bytes; any
// violation is reported here rather than silently tolerated.
func (b *Builder) Add(key, value []byte) error {
	if b.done {
		return errors.New("dawg: Add called after Finish")
	}
	// Empty keys are rejected unconditionally: the encoded image has no
	// record for the virtual root, so a root-final automaton could not
	// round-trip through the wire format.
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if bytes.IndexByte(key, 0) >= 0 {
		return errors.Wrapf(ErrNullByte, "key %q", key)
	}
	if b.started {
		switch bytes.Compare(b.prevKey, key) {
		case 0:
			return errors.Wrapf(ErrDuplicateKey, "key %q", key)
		case 1:
			return errors.Wrapf(ErrUnsorted, "%q after %q", key, b.prevKey)
		}
	}
	b.started = true

	prefixLen := commonPrefixLen(b.prevKey, key)
	b.finalizeSuffix(prefixLen)

	// Extend the path with fresh nodes for key[prefixLen:].
	cur := b.path[len(b.path)-1]
	for i := prefixLen; i < len(key); i++ {
		next := &Node{}
		cur.Edges = append(cur.Edges, Edge{Label: key[i], Target: next})
		b.path = append(b.path, next)
		cur = next
	}
	cur.Final = true
	if b.hasValues {
		cur.Value = append([]byte(nil), value...)
	}
	b.prevKey = append(b.prevKey[:0], key...)
	return nil
}

// finalizeSuffix finalizes (registers or replaces with an already-registered
// equivalent) every node on the current path below depth keep, bottom-up,
// then truncates the path to that depth.
func (b *Builder) finalizeSuffix(keep int) {
	for depth := len(b.path) - 1; depth > keep; depth-- {
		child := b.path[depth]
		parent := b.path[depth-1]
		shared := b.reg.finalize(child)
		// Replace the parent's edge to child with the canonical node.
		parent.Edges[len(parent.Edges)-1].Target = shared
	}
	b.path = b.path[:keep+1]
}

// Finish finalizes the remaining path (including the root) and returns the
// minimized root node. The Builder must not be used again afterward.
func (b *Builder) Finish() (*Node, error) {
	if b.done {
		return nil, errors.New("dawg: Finish called twice")
	}
	b.finalizeSuffix(0)
	b.root = b.reg.finalize(b.root)
	b.done = true
	return b.root, nil
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// BuildSorted builds a minimized DAWG from entries already in strictly
// ascending order. It is a convenience wrapper around Builder for callers
// that have the whole batch in memory.
func BuildSorted(entries []Entry, opts ...Option) (*Node, error) {
	b := NewBuilder(opts...)
	for _, e := range entries {
		if err := b.Add(e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// BuildUnsorted sorts a copy of entries by key and then builds, for callers
// that pass sorted=false. Duplicate keys are still rejected.
func BuildUnsorted(entries []Entry, opts ...Option) (*Node, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})
	return BuildSorted(sorted, opts...)
}
