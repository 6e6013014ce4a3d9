//go:build unix

package simtrie

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mmapFile maps a file read-only via unix.Mmap for LoadMmap's zero-copy path.
type mmapFile struct {
	data []byte
}

func (m *mmapFile) Bytes() []byte { return m.data }

func (m *mmapFile) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return errors.Wrap(err, "simtrie: munmap")
}

func mmapOpen(path string) (*mmapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "simtrie: open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "simtrie: stat %s", path)
	}
	size := fi.Size()
	if size == 0 {
		return nil, errors.Wrap(ErrParse, "truncated header")
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "simtrie: mmap %s", path)
	}
	return &mmapFile{data: data}, nil
}
