package index

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/aureliengamet/minigit/plumbing/hash"
)

const (
	signature = "DIRC"
	// Version is the only on-disk index version this system produces
	// or accepts; there are no extensions beyond it.
	Version = uint32(2)

	// entryHeaderLength is the size, in bytes, of an entry's fixed
	// prefix: ten uint32 fields, a raw 20-byte oid, and a uint16 of
	// flags. 10*4 + 20 + 2 = 62.
	entryHeaderLength = 62

	// nameMask clamps the path-length field packed into flags; actual
	// path bytes are still read/written in full by scanning for the
	// terminating NUL, matching git's own v2 index behavior.
	nameMask = 0xFFF
)

// Encode writes idx to w as a version-2 index file: header, entries in
// lexicographic path order, and a trailing SHA-1 of everything written
// so far.
func Encode(w io.Writer, idx *Index) error {
	h := hash.New()
	mw := io.MultiWriter(w, h)

	if err := writeHeader(mw, idx); err != nil {
		return err
	}

	for _, e := range idx.SortedEntries() {
		if err := writeEntry(mw, e); err != nil {
			return err
		}
	}

	if _, err := w.Write(h.Sum(nil)); err != nil {
		return errors.Wrap(err, "writing index trailer")
	}
	return nil
}

func writeHeader(w io.Writer, idx *Index) error {
	if _, err := io.WriteString(w, signature); err != nil {
		return errors.Wrap(err, "writing index signature")
	}
	if err := binary.Write(w, binary.BigEndian, Version); err != nil {
		return errors.Wrap(err, "writing index version")
	}
	return errors.Wrap(
		binary.Write(w, binary.BigEndian, uint32(idx.Len())),
		"writing index entry count",
	)
}

func writeEntry(w io.Writer, e *Entry) error {
	fields := []any{
		e.CTimeSec, e.CTimeNsec,
		e.MTimeSec, e.MTimeNsec,
		e.Dev, e.Ino,
		e.Mode,
		e.UID, e.GID,
		e.Size,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return errors.Wrapf(err, "writing index entry %q", e.Path)
		}
	}

	raw, err := e.OID.Bytes()
	if err != nil {
		return errors.Wrapf(err, "index entry %q", e.Path)
	}
	if _, err := w.Write(raw); err != nil {
		return errors.Wrapf(err, "writing index entry %q", e.Path)
	}

	flags := uint16(len(e.Path))
	if len(e.Path) > nameMask {
		flags = nameMask
	}
	if err := binary.Write(w, binary.BigEndian, flags); err != nil {
		return errors.Wrapf(err, "writing index entry %q", e.Path)
	}

	if _, err := io.WriteString(w, e.Path); err != nil {
		return errors.Wrapf(err, "writing index entry %q", e.Path)
	}

	padding := make([]byte, paddingFor(len(e.Path)))
	_, err = w.Write(padding)
	return errors.Wrapf(err, "writing index entry %q", e.Path)
}

// paddingFor returns the number of trailing NUL bytes an entry with the
// given path length needs so that entryHeaderLength + pathLen + padding
// is a multiple of 8 and at least one NUL is always present.
func paddingFor(pathLen int) int {
	unpadded := entryHeaderLength + pathLen
	total := ((unpadded + 1 + 7) / 8) * 8
	return total - unpadded
}
