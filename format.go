package simtrie

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dawgo/simtrie/internal/dawg"
)

// Wire format: 4-byte ASCII magic, version, flags, a little-endian uint64
// state count, then NUM_STATES fixed-size records, then an optional value
// table. Every record is fixed-width regardless of its final flag: the
// value_ix field is always reserved and left zero on non-final records
// rather than made conditional (see DESIGN.md).
const (
	magic         = "SMT1"
	formatVersion = uint8(1)
	flagHasValues = uint8(1 << 0)

	recordFlagLast  = uint8(1 << 0)
	recordFlagFinal = uint8(1 << 1)

	headerSize = len(magic) + 1 + 1 + 8 // magic + version + flags + numStates
)

func recordSize(hasValues bool) int {
	if hasValues {
		return 10 // label:1 flags:1 target:4 value_ix:4
	}
	return 6 // label:1 flags:1 target:4
}

// encodeImage serializes e into the bit-exact on-disk format.
func encodeImage(e *dawg.Encoded) []byte {
	recSize := recordSize(e.HasValues)
	buf := make([]byte, headerSize, headerSize+len(e.Records)*recSize+32)

	copy(buf, magic)
	buf[4] = formatVersion
	if e.HasValues {
		buf[5] = flagHasValues
	}
	binary.LittleEndian.PutUint64(buf[6:14], uint64(len(e.Records)))

	var rec [10]byte
	for _, r := range e.Records {
		var fb uint8
		if r.Last {
			fb |= recordFlagLast
		}
		if r.Final {
			fb |= recordFlagFinal
		}
		rec[0] = r.Label
		rec[1] = fb
		binary.LittleEndian.PutUint32(rec[2:6], r.Target)
		if e.HasValues {
			binary.LittleEndian.PutUint32(rec[6:10], r.ValueIx)
			buf = append(buf, rec[:10]...)
		} else {
			buf = append(buf, rec[:6]...)
		}
	}

	if e.HasValues {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(e.Values)))
		buf = append(buf, n[:]...)
		for _, v := range e.Values {
			var l [4]byte
			binary.LittleEndian.PutUint32(l[:], uint32(len(v)))
			buf = append(buf, l[:]...)
			buf = append(buf, v...)
		}
	}
	return buf
}

// decodeImage parses and fully range-validates a serialized image: magic,
// version, and every target and value_ix must be in range before any of
// them is trusted. It never panics on malformed input; every failure mode
// returns ErrParse.
func decodeImage(data []byte) (*dawg.Encoded, error) {
	if len(data) < headerSize {
		return nil, errors.Wrap(ErrParse, "truncated header")
	}
	if string(data[:4]) != magic {
		return nil, errors.Wrapf(ErrParse, "unrecognized magic %q", data[:4])
	}
	ver := data[4]
	if ver != formatVersion {
		return nil, errors.Wrapf(ErrParse, "unsupported version %d", ver)
	}
	flags := data[5]
	hasValues := flags&flagHasValues != 0
	numStates := binary.LittleEndian.Uint64(data[6:14])

	recSize := recordSize(hasValues)
	if numStates > uint64(len(data)) {
		// Every record is at least 1 byte; this bound also rules out the
		// multiplication below overflowing uint64 for adversarial input.
		return nil, errors.Wrap(ErrParse, "truncated state records")
	}
	recordsBytes := numStates * uint64(recSize)
	if recordsBytes > uint64(len(data))-uint64(headerSize) {
		return nil, errors.Wrap(ErrParse, "truncated state records")
	}
	off := uint64(headerSize)

	records := make([]dawg.Record, numStates)
	for i := range records {
		base := off + uint64(i)*uint64(recSize)
		fb := data[base+1]
		target := binary.LittleEndian.Uint32(data[base+2 : base+6])
		if target != dawg.NoChildren && uint64(target) >= numStates {
			return nil, errors.Wrapf(ErrParse, "target %d out of range (%d states)", target, numStates)
		}
		rec := dawg.Record{
			Label:  data[base],
			Last:   fb&recordFlagLast != 0,
			Final:  fb&recordFlagFinal != 0,
			Target: target,
		}
		if hasValues {
			rec.ValueIx = binary.LittleEndian.Uint32(data[base+6 : base+10])
		}
		records[i] = rec
	}
	// Sibling runs are delimited by the last flag, and navigation scans a
	// run forward until it sees one. If the final record of the image is not
	// flagged last, some run extends past the array, so reject the image
	// rather than letting a scan read out of bounds.
	if numStates > 0 && !records[numStates-1].Last {
		return nil, errors.Wrap(ErrParse, "unterminated sibling run")
	}
	off += recordsBytes

	var values [][]byte
	if hasValues {
		if off+4 > uint64(len(data)) {
			return nil, errors.Wrap(ErrParse, "truncated value table header")
		}
		numValues := binary.LittleEndian.Uint32(data[off : off+4])
		off += 4
		values = make([][]byte, numValues)
		for i := range values {
			if off+4 > uint64(len(data)) {
				return nil, errors.Wrap(ErrParse, "truncated value entry length")
			}
			l := binary.LittleEndian.Uint32(data[off : off+4])
			off += 4
			if off+uint64(l) > uint64(len(data)) {
				return nil, errors.Wrap(ErrParse, "truncated value entry bytes")
			}
			v := make([]byte, l)
			copy(v, data[off:off+uint64(l)])
			values[i] = v
			off += uint64(l)
		}
		for _, r := range records {
			if r.Final && uint64(r.ValueIx) >= uint64(len(values)) {
				return nil, errors.Wrapf(ErrParse, "value_ix %d out of range (%d values)", r.ValueIx, len(values))
			}
		}
	}

	return &dawg.Encoded{Records: records, Values: values, HasValues: hasValues}, nil
}

// MappedSet is a Set loaded from a read-only memory mapping of an image
// file. The image is read through the mapping rather than into a separate
// []byte, but decoding copies its records and values onto the heap, so
// queries do not read the mapping. It embeds *Set so every query method is
// available directly; Close unmaps the underlying file.
type MappedSet struct {
	*Set
	mf *mmapFile
}

// Close unmaps the backing file. The decoded Set holds no reference to the
// mapping.
func (m *MappedSet) Close() error { return m.mf.Close() }

// LoadMmap maps path read-only and parses a Set directly from the mapping,
// avoiding a copy into a freshly allocated []byte. On platforms without
// unix.Mmap (the !unix build tag) it transparently falls back to a buffered
// read.
func LoadMmap(path string) (*MappedSet, error) {
	mf, err := mmapOpen(path)
	if err != nil {
		return nil, err
	}
	s, err := FromBytes(mf.Bytes())
	if err != nil {
		mf.Close()
		return nil, err
	}
	currentLogger().Debug("simtrie: mapped set loaded", zap.String("path", path), zap.Int("bytes", len(mf.Bytes())))
	return &MappedSet{Set: s, mf: mf}, nil
}
