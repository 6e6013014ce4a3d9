package dawg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildNav(t *testing.T, ks ...string) *Navigator {
	t.Helper()
	root, err := BuildSorted(keys(ks...))
	require.NoError(t, err)
	return NewNavigator(Encode(root, false))
}

func TestNavigator_OutgoingIsByteAscending(t *testing.T) {
	nav := buildNav(t, "apple", "art", "bee")
	var labels []byte
	for c := range nav.Outgoing(nav.RootState()) {
		labels = append(labels, c)
	}
	require.Equal(t, []byte{'a', 'b'}, labels)
}

func TestNavigator_TransitionMissingByte(t *testing.T) {
	nav := buildNav(t, "foo")
	_, ok := nav.Transition(nav.RootState(), 'z')
	require.False(t, ok)
}

func TestNavigator_RootNeverFinal(t *testing.T) {
	nav := buildNav(t, "a")
	require.False(t, nav.IsFinal(nav.RootState()))
}

func TestNavigator_LinearAndBinarySearchAgree(t *testing.T) {
	// Force a sibling run wider than linearScanThreshold so Transition
	// exercises the binary-search path, and check it agrees with a run
	// narrow enough to stay on the linear-scan path.
	wide := make([]string, 0, 20)
	for c := byte('a'); c < 'a'+20; c++ {
		wide = append(wide, string([]byte{c, 'x'}))
	}
	nav := buildNav(t, wide...)
	require.Greater(t, 20, linearScanThreshold)

	for _, k := range wide {
		state, ok := nav.Transition(nav.RootState(), k[0])
		require.True(t, ok, "byte %q should transition", k[0])
		_, ok = nav.Transition(state, k[1])
		require.True(t, ok)
	}
	_, ok := nav.Transition(nav.RootState(), 'Z')
	require.False(t, ok)
}

func TestNavigator_EmptyAutomaton(t *testing.T) {
	nav := buildNav(t)
	require.True(t, nav.Empty())
	_, ok := nav.Transition(nav.RootState(), 'a')
	require.False(t, ok)
}
