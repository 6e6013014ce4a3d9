package dawg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func keys(ss ...string) []Entry {
	out := make([]Entry, len(ss))
	for i, s := range ss {
		out[i] = Entry{Key: []byte(s)}
	}
	return out
}

func TestBuildSorted_AcceptsExactKeySet(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{"single key", []string{"foo"}},
		{"shared prefix", []string{"bar", "f", "foo", "foobar"}},
		{"no shared structure", []string{"apple", "banana", "cherry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := BuildSorted(keys(tt.keys...))
			require.NoError(t, err)
			nav := NewNavigator(Encode(root, false))

			for _, k := range tt.keys {
				require.True(t, contains(nav, k), "expected %q to be a member", k)
			}
			require.False(t, contains(nav, "not-a-member"))
		})
	}
}

func contains(nav *Navigator, key string) bool {
	state := nav.RootState()
	for i := 0; i < len(key); i++ {
		next, ok := nav.Transition(state, key[i])
		if !ok {
			return false
		}
		state = next
	}
	return nav.IsFinal(state)
}

func TestBuildSorted_RejectsDuplicateKey(t *testing.T) {
	_, err := BuildSorted(keys("foo", "foo"))
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestBuildSorted_RejectsUnsortedInput(t *testing.T) {
	_, err := BuildSorted(keys("foo", "bar"))
	require.ErrorIs(t, err, ErrUnsorted)
}

func TestBuildSorted_RejectsNullByte(t *testing.T) {
	_, err := BuildSorted([]Entry{{Key: []byte("foo\x00bar")}, {Key: []byte("zzz")}})
	require.ErrorIs(t, err, ErrNullByte)
}

func TestBuildSorted_RejectsEmptyKey(t *testing.T) {
	_, err := BuildSorted([]Entry{{Key: nil}})
	require.ErrorIs(t, err, ErrEmptyKey)

	_, err = BuildSorted([]Entry{{Key: []byte{}}, {Key: []byte("a")}})
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestBuildUnsorted_SortsBeforeBuilding(t *testing.T) {
	root, err := BuildUnsorted(keys("foo", "bar", "foobar", "f"))
	require.NoError(t, err)
	nav := NewNavigator(Encode(root, false))
	for _, k := range []string{"foo", "bar", "foobar", "f"} {
		require.True(t, contains(nav, k))
	}
}

func TestBuildSorted_MinimizesSharedSuffixes(t *testing.T) {
	// "running" and "jumping" share no prefix but share the "ing" suffix;
	// a minimized DAWG must register that suffix once.
	root, err := BuildSorted(keys("jumping", "running"))
	require.NoError(t, err)

	countNodes := func(n *Node, seen map[*Node]bool) int {
		var walk func(*Node) int
		walk = func(n *Node) int {
			if seen[n] {
				return 0
			}
			seen[n] = true
			total := 1
			for _, e := range n.Edges {
				total += walk(e.Target)
			}
			return total
		}
		return walk(n)
	}
	nodeCount := countNodes(root, map[*Node]bool{})
	// Unminimized this would need 1 (root) + 7 + 7 = 15 nodes; the shared
	// "ing" suffix (i-n-g-terminal, 4 nodes) must collapse to one chain.
	require.Less(t, nodeCount, 15)
}

func TestBuilder_AddAfterFinishFails(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add([]byte("a"), nil))
	_, err := b.Finish()
	require.NoError(t, err)
	err = b.Add([]byte("b"), nil)
	require.Error(t, err)
}

func TestBuilder_FinishTwiceFails(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add([]byte("a"), nil))
	_, err := b.Finish()
	require.NoError(t, err)
	_, err = b.Finish()
	require.Error(t, err)
}

func TestBuildSorted_EmptyInputIsLegal(t *testing.T) {
	root, err := BuildSorted(nil)
	require.NoError(t, err)
	nav := NewNavigator(Encode(root, false))
	require.True(t, nav.Empty())
	require.False(t, contains(nav, "anything"))
}

func TestBuildSorted_WithValues(t *testing.T) {
	root, err := BuildSorted([]Entry{
		{Key: []byte("bar"), Value: []byte{5}},
		{Key: []byte("foo"), Value: []byte{1}},
		{Key: []byte("foobar"), Value: []byte{3}},
	}, WithValues())
	require.NoError(t, err)
	nav := NewNavigator(Encode(root, true))

	valueOf := func(key string) []byte {
		state := nav.RootState()
		for i := 0; i < len(key); i++ {
			next, ok := nav.Transition(state, key[i])
			require.True(t, ok)
			state = next
		}
		return nav.Value(state)
	}
	require.Equal(t, []byte{1}, valueOf("foo"))
	require.Equal(t, []byte{5}, valueOf("bar"))
	require.Equal(t, []byte{3}, valueOf("foobar"))
}
