package index

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/plumbing/hash"
)

var (
	// ErrMalformedHeader is returned when the magic or version does
	// not match what this system produces.
	ErrMalformedHeader = errors.New("fatal: bad index file header")
	// ErrShortIndex is returned when the stream ends before the
	// declared number of entries or the trailer have been read.
	ErrShortIndex = errors.New("fatal: index was shorter than expected")
	// ErrCorruptIndex is returned when the trailing SHA-1 does not
	// match the bytes that precede it.
	ErrCorruptIndex = errors.New("fatal: index file corrupt")
)

// Decode reads a version-2 index file from r, verifying its trailing
// checksum. It returns an empty Index when r is empty to let callers
// load an index that has never been written.
func Decode(r io.Reader) (*Index, error) {
	buf := bufio.NewReader(r)
	if _, err := buf.Peek(1); err == io.EOF {
		return New(), nil
	}

	h := hash.New()
	tr := io.TeeReader(buf, h)

	if err := readHeader(tr); err != nil {
		return nil, err
	}

	count, err := readUint32(tr)
	if err != nil {
		return nil, err
	}

	idx := New()
	for i := uint32(0); i < count; i++ {
		e, err := readEntry(tr)
		if err != nil {
			return nil, err
		}
		idx.entries[e.Path] = e
		idx.addAncestors(e.Path)
	}

	sum := h.Sum(nil)
	trailer := make([]byte, hash.Size)
	if _, err := io.ReadFull(buf, trailer); err != nil {
		return nil, errors.Wrap(ErrShortIndex, "reading index trailer")
	}
	if !bytes.Equal(sum, trailer) {
		return nil, ErrCorruptIndex
	}

	return idx, nil
}

func readHeader(r io.Reader) error {
	magic := make([]byte, len(signature))
	if _, err := io.ReadFull(r, magic); err != nil {
		return errors.Wrap(ErrShortIndex, "reading index signature")
	}
	if string(magic) != signature {
		return errors.Wrapf(ErrMalformedHeader, "got signature %q", magic)
	}

	version, err := readUint32(r)
	if err != nil {
		return err
	}
	if version != Version {
		return errors.Wrapf(ErrMalformedHeader, "unsupported index version %d", version)
	}
	return nil
}

func readUint32(r io.Reader) (uint32, error) {
	var v uint32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, errors.Wrap(ErrShortIndex, "reading index field")
	}
	return v, nil
}

func readUint16(r io.Reader) (uint16, error) {
	var v uint16
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, errors.Wrap(ErrShortIndex, "reading index field")
	}
	return v, nil
}

func readEntry(r io.Reader) (*Entry, error) {
	e := &Entry{}

	fields := []*uint32{
		&e.CTimeSec, &e.CTimeNsec,
		&e.MTimeSec, &e.MTimeNsec,
		&e.Dev, &e.Ino,
		&e.Mode,
		&e.UID, &e.GID,
		&e.Size,
	}
	for _, f := range fields {
		v, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		*f = v
	}

	raw := make([]byte, hash.Size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, errors.Wrap(ErrShortIndex, "reading index entry oid")
	}
	oid, err := hash.FromBytes(raw)
	if err != nil {
		return nil, err
	}
	e.OID = oid

	if _, err := readUint16(r); err != nil {
		return nil, err
	}

	path, err := readPath(r)
	if err != nil {
		return nil, err
	}
	e.Path = path

	return e, nil
}

// readPath reads a NUL-terminated path and consumes the NUL padding
// that follows, up to the next 8-byte-aligned boundary (relative to the
// start of the entry), without assuming the flags path-length field is
// accurate (it is clamped at 0xFFF for long paths).
func readPath(r io.Reader) (string, error) {
	var path []byte
	one := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, one); err != nil {
			return "", errors.Wrap(ErrShortIndex, "reading index entry path")
		}
		if one[0] == 0 {
			break
		}
		path = append(path, one[0])
	}

	padding := paddingFor(len(path)) - 1 // the NUL already consumed above
	if padding > 0 {
		discard := make([]byte, padding)
		if _, err := io.ReadFull(r, discard); err != nil {
			return "", errors.Wrap(ErrShortIndex, "reading index entry padding")
		}
	}

	return string(path), nil
}
