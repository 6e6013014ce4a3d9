package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dawgo/simtrie"
)

func TestReadWordlist_SetOnly(t *testing.T) {
	path := writeTemp(t, "foo\nbar\nfoobar\n")
	pairs, hasValues, err := readWordlist(path)
	require.NoError(t, err)
	require.False(t, hasValues)
	require.Equal(t, []string{"bar", "foo", "foobar"}, keysOf(pairs))
}

func TestReadWordlist_WithValues(t *testing.T) {
	path := writeTemp(t, "foo\t1\nbar\t5\n")
	pairs, hasValues, err := readWordlist(path)
	require.NoError(t, err)
	require.True(t, hasValues)
	require.Equal(t, []string{"bar", "foo"}, keysOf(pairs))
	require.Equal(t, int64(5), pairs[0].Value.Int64())
	require.Equal(t, int64(1), pairs[1].Value.Int64())
}

func TestReadWordlist_RejectsBadValue(t *testing.T) {
	path := writeTemp(t, "foo\tnotanumber\n")
	_, _, err := readWordlist(path)
	require.Error(t, err)
}

func TestReadWordlist_SkipsBlankLines(t *testing.T) {
	path := writeTemp(t, "foo\n\nbar\n")
	pairs, _, err := readWordlist(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := t.TempDir() + "/words.txt"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func keysOf(pairs []simtrie.Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = string(p.Key)
	}
	return out
}
