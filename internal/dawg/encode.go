package dawg

import "math"

// NoChildren is the reserved Target sentinel meaning "this state accepts no
// further bytes". It doubles as the wire format's 0xFFFFFFFF sentinel.
const NoChildren uint32 = math.MaxUint32

// Record is one fixed-size encoded state record.
type Record struct {
	Label   byte
	Last    bool // true iff final sibling in its parent's transition list
	Final   bool // accepting flag
	Target  uint32
	ValueIx uint32 // only meaningful when Final and the dictionary has values
}

// Encoded is the flat, read-only result of encoding a minimized DAWG: a
// contiguous array of sibling-ordered records plus an (optional) append-only
// value table.
type Encoded struct {
	Records   []Record
	Values    [][]byte
	HasValues bool
}

// Encode linearizes root into a flat array via breadth-first traversal, so
// every state's children occupy one contiguous, byte-ascending sibling run.
// Encoding is deterministic: identical input always produces a
// byte-identical Encoded value.
func Encode(root *Node, hasValues bool) *Encoded {
	order, base, total := assignBases(root)

	records := make([]Record, total)
	var values [][]byte
	if hasValues {
		values = make([][]byte, 0)
	}
	valueIx := make(map[string]uint32)

	// Emission walks nodes in BFS order, not map order, so the value table
	// is filled in a fixed sequence and re-encoding the same automaton is
	// byte-identical.
	for _, n := range order {
		b := base[n]
		for i, e := range n.Edges {
			rec := Record{
				Label: e.Label,
				Last:  i == len(n.Edges)-1,
				Final: e.Target.Final,
			}
			if len(e.Target.Edges) > 0 {
				rec.Target = base[e.Target]
			} else {
				rec.Target = NoChildren
			}
			if hasValues && e.Target.Final {
				ix, ok := valueIx[string(e.Target.Value)]
				if !ok {
					ix = uint32(len(values))
					values = append(values, e.Target.Value)
					valueIx[string(e.Target.Value)] = ix
				}
				rec.ValueIx = ix
			}
			records[b+uint32(i)] = rec
		}
	}

	return &Encoded{Records: records, Values: values, HasValues: hasValues}
}

// assignBases performs a breadth-first discovery of every node that owns at
// least one outgoing edge, assigning each a base record index (the start of
// its children's sibling run) in discovery order. Nodes reached more than
// once (shared, register-merged subtrees) are assigned exactly one base.
func assignBases(root *Node) ([]*Node, map[*Node]uint32, uint32) {
	base := make(map[*Node]uint32)
	seen := map[*Node]bool{root: true}
	queue := []*Node{root}
	var order []*Node

	var next uint32
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if len(n.Edges) == 0 {
			continue
		}
		order = append(order, n)
		base[n] = next
		next += uint32(len(n.Edges))
		for _, e := range n.Edges {
			if !seen[e.Target] {
				seen[e.Target] = true
				queue = append(queue, e.Target)
			}
		}
	}
	return order, base, next
}
