//go:build !unix

package simtrie

import (
	"os"

	"github.com/pkg/errors"
)

// mmapFile is a non-mmap fallback on platforms without unix.Mmap: it just
// holds a buffered read of the whole file.
type mmapFile struct {
	data []byte
}

func (m *mmapFile) Bytes() []byte { return m.data }

func (m *mmapFile) Close() error { return nil }

func mmapOpen(path string) (*mmapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "simtrie: read %s", path)
	}
	return &mmapFile{data: data}, nil
}
