package simtrie

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func toByteSlices(ss ...string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func toStrings(bs [][]byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}

func TestSet_KeysAndPrefixes(t *testing.T) {
	s, err := NewSet(toByteSlices("bar", "f", "foo", "foobar"), true)
	require.NoError(t, err)

	require.Equal(t, []string{"foo", "foobar"}, toStrings(s.Keys([]byte("foo"))))
	require.Equal(t, []string{"f", "foo", "foobar"}, toStrings(s.Prefixes([]byte("foobarz"))))
}

func TestSet_NullByteKeyNeverMatches(t *testing.T) {
	s, err := NewSet(toByteSlices("foo"), true)
	require.NoError(t, err)
	require.False(t, s.Contains([]byte("foo\x00bar")))
}

func TestSet_NullByteKeyFailsBuild(t *testing.T) {
	_, err := NewSet([][]byte{[]byte("foo\x00bar"), []byte("bar")}, false)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSet_Contains(t *testing.T) {
	s, err := NewSet(toByteSlices("apple", "banana"), true)
	require.NoError(t, err)
	require.True(t, s.Contains([]byte("apple")))
	require.False(t, s.Contains([]byte("appl")))
	require.False(t, s.Contains([]byte("grape")))
}

func TestSet_KeysEmptyPrefixEnumeratesAll(t *testing.T) {
	in := []string{"a", "ab", "abc", "b"}
	s, err := NewSet(toByteSlices(in...), true)
	require.NoError(t, err)
	require.Equal(t, in, toStrings(s.Keys(nil)))
}

func TestSet_KeysAbsentPrefixIsEmpty(t *testing.T) {
	s, err := NewSet(toByteSlices("foo"), true)
	require.NoError(t, err)
	require.Empty(t, s.Keys([]byte("zzz")))
}

func TestSet_RejectsUnsortedWhenSortedTrue(t *testing.T) {
	_, err := NewSet(toByteSlices("foo", "bar"), true)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSet_SortedFalseSortsInternally(t *testing.T) {
	s, err := NewSet(toByteSlices("foo", "bar", "foobar"), false)
	require.NoError(t, err)
	require.True(t, s.Contains([]byte("bar")))
	require.True(t, s.Contains([]byte("foo")))
	require.True(t, s.Contains([]byte("foobar")))
}

func TestSet_RejectsDuplicateKey(t *testing.T) {
	_, err := NewSet(toByteSlices("foo", "foo"), false)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSet_EmptySetIsQueryable(t *testing.T) {
	s, err := NewSet(nil, true)
	require.NoError(t, err)
	require.False(t, s.Contains([]byte("anything")))
	require.Empty(t, s.Keys(nil))
	require.True(t, s.Empty())
}

func TestSet_ZeroValueBehavesAsEmpty(t *testing.T) {
	var s Set
	require.False(t, s.Contains([]byte("random-key")))
	require.Empty(t, s.Keys(nil))
	require.Empty(t, s.Prefixes([]byte("abc")))
	require.Empty(t, s.Similar([]byte("abc"), 2, nil, false, nil))
	require.True(t, s.Empty())
}

func TestDict_ZeroValueBehavesAsEmpty(t *testing.T) {
	var d Dict
	require.False(t, d.Contains([]byte("random-key")))
	_, err := d.Get([]byte("random-key"))
	require.ErrorIs(t, err, ErrMissingKey)
	require.Empty(t, d.Items(nil))
}

func TestSet_EmptyIsFalseOnceKeysExist(t *testing.T) {
	s, err := NewSet(toByteSlices("foo"), true)
	require.NoError(t, err)
	require.False(t, s.Empty())
}

func TestSet_RoundTripSerializationIsDeterministic(t *testing.T) {
	s, err := NewSet(toByteSlices("bar", "f", "foo", "foobar"), true)
	require.NoError(t, err)

	b1 := s.ToBytes()
	b2 := s.ToBytes()
	require.Equal(t, b1, b2, "ToBytes must be deterministic and idempotent")

	restored, err := FromBytes(b1)
	require.NoError(t, err)
	require.Equal(t, toStrings(s.Keys(nil)), toStrings(restored.Keys(nil)))
	require.Equal(t, b1, restored.ToBytes(), "re-encoding a round-tripped set must reproduce the same bytes")
}

func TestSet_DumpLoad(t *testing.T) {
	s, err := NewSet(toByteSlices("a", "b", "c"), true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, toStrings(loaded.Keys(nil)))
}
