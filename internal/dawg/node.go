// Package dawg implements the build-time minimization, binary encoding, and
// read-only navigation of a compact acyclic deterministic finite-state
// automaton (DAWG) over byte strings.
//
// Construction works on mutable Nodes; encoding and navigation share one
// fixed-width record shape: the same Record array the encoder emits is what
// the serialized image stores and what the Navigator walks.
package dawg

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// Edge is an outgoing transition from a build-time Node.
type Edge struct {
	Label  byte
	Target *Node
}

// Node is a mutable trie/DAWG node used only during construction. Once a
// Node has been registered (or matched to an existing registered node) it is
// treated as immutable; nothing mutates Edges or Value afterward.
type Node struct {
	Edges []Edge // strictly increasing by Label
	Final bool
	Value []byte // present iff Final and the dictionary carries values
}

// signature returns the canonical byte encoding of this node's structural
// identity: (final, value, sorted outgoing (label, child-identity) list).
// Two nodes with equal signatures are interchangeable in a minimized DAWG.
// Child identity is the child's own signature hash, which is valid only
// because children are always finalized (and thus hashed) before their
// parent, the same bottom-up order the Daciuk algorithm already requires.
func (n *Node) signature(hash func(*Node) uint64) []byte {
	buf := make([]byte, 0, 10+len(n.Value)+len(n.Edges)*9)
	if n.Final {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(n.Value)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, n.Value...)
	for _, e := range n.Edges {
		buf = append(buf, e.Label)
		var h [8]byte
		binary.LittleEndian.PutUint64(h[:], hash(e.Target))
		buf = append(buf, h[:]...)
	}
	return buf
}

// registerKey is the fixed 64-bit SipHash-2-4 digest of a node's signature.
// SipHash is keyed (with the fixed key below, compiled into the package, so
// digests are the same in every run) so the register's bucket distribution cannot be driven worst-case by input
// keys the way an unkeyed hash could.
var registerKey0, registerKey1 = uint64(0x646177675f6b3031), uint64(0x5f7265676973746b)

func registerKeyOf(n *Node, hashOf func(*Node) uint64) uint64 {
	return siphash.Hash(registerKey0, registerKey1, n.signature(hashOf))
}

// register is the hash-consing table of already-finalized, structurally
// canonical subautomata. It maps a signature hash to the
// bucket of distinct finalized nodes sharing that hash, so a hash collision
// never merges two structurally different nodes.
type register struct {
	buckets map[uint64][]*Node
	hashes  map[*Node]uint64 // memoized registerKeyOf, needed to hash parents
}

func newRegister() *register {
	return &register{
		buckets: make(map[uint64][]*Node),
		hashes:  make(map[*Node]uint64),
	}
}

func (r *register) hashOf(n *Node) uint64 {
	if h, ok := r.hashes[n]; ok {
		return h
	}
	// Unregistered node (still being extended along the current path):
	// its hash is not memoized yet and must not be cached, since its
	// Edges can still change before it is finalized.
	return registerKeyOf(n, r.hashOf)
}

// equal reports whether two (already finalized) nodes are structurally
// identical: same finality, same value, same outgoing (label, child) list
// where children are compared by identity (valid since equal children are
// always register-shared, never duplicated).
func equal(a, b *Node) bool {
	if a.Final != b.Final || len(a.Edges) != len(b.Edges) {
		return false
	}
	if !bytesEqual(a.Value, b.Value) {
		return false
	}
	for i := range a.Edges {
		if a.Edges[i].Label != b.Edges[i].Label || a.Edges[i].Target != b.Edges[i].Target {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// finalize looks n up in the register by structural signature. If an
// equivalent node is already registered, it is returned (so the caller can
// replace its reference to n with the shared node and let n be collected).
// Otherwise n itself is registered and returned.
func (r *register) finalize(n *Node) *Node {
	h := registerKeyOf(n, r.hashOf)
	for _, existing := range r.buckets[h] {
		if equal(existing, n) {
			return existing
		}
	}
	r.buckets[h] = append(r.buckets[h], n)
	r.hashes[n] = h
	return n
}
