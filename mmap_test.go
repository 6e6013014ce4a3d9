package simtrie

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMmap_RoundTrip(t *testing.T) {
	s, err := NewSet(toByteSlices("bar", "f", "foo", "foobar"), true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "image.smt")
	require.NoError(t, os.WriteFile(path, s.ToBytes(), 0o644))

	mapped, err := LoadMmap(path)
	require.NoError(t, err)
	defer mapped.Close()

	require.Equal(t, []string{"bar", "f", "foo", "foobar"}, toStrings(mapped.Keys(nil)))
	require.True(t, mapped.Contains([]byte("foobar")))
}

func TestLoadMmap_RejectsMissingFile(t *testing.T) {
	_, err := LoadMmap(filepath.Join(t.TempDir(), "does-not-exist.smt"))
	require.Error(t, err)
}
