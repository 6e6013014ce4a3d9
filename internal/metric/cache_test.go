package metric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCache_ReturnsSameInstanceForEqualRuleSets(t *testing.T) {
	c := NewCache()
	m1, err := c.Compile([]Rule{Insert('e', 0.5)})
	require.NoError(t, err)
	m2, err := c.Compile([]Rule{Insert('e', 0.5)})
	require.NoError(t, err)
	require.Same(t, m1, m2, "identical rule sets should hit the cache")
}

func TestCache_DistinctRuleSetsCompileIndependently(t *testing.T) {
	c := NewCache()
	m1, err := c.Compile([]Rule{Insert('e', 0.5)})
	require.NoError(t, err)
	m2, err := c.Compile([]Rule{Insert('e', 0.9)})
	require.NoError(t, err)
	require.NotSame(t, m1, m2)
	require.Equal(t, 0.5, m1.InsertCost('e'))
	require.Equal(t, 0.9, m2.InsertCost('e'))
}

func TestCache_SignatureIgnoresRuleOrder(t *testing.T) {
	c := NewCache()
	m1, err := c.Compile([]Rule{Insert('e', 0.5), Delete('x', 0.2)})
	require.NoError(t, err)
	m2, err := c.Compile([]Rule{Delete('x', 0.2), Insert('e', 0.5)})
	require.NoError(t, err)
	require.Same(t, m1, m2)
}

func TestCache_PropagatesCompileError(t *testing.T) {
	c := NewCache()
	_, err := c.Compile([]Rule{{From: []byte("abc"), To: []byte("de"), Cost: 1}})
	require.ErrorIs(t, err, ErrMalformedMetric)
}
