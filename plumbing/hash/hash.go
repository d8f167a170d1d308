// Package hash wraps the collision-detecting SHA-1 implementation used to
// name every object and to seal the index file.
package hash

import (
	"encoding/hex"
	stdhash "hash"

	"github.com/pjbgf/sha1cd"
	"github.com/pkg/errors"
)

const (
	// Size is the length, in bytes, of a raw object id.
	Size = 20
	// HexSize is the length, in characters, of a hex-encoded object id.
	HexSize = Size * 2
)

// New returns a fresh SHA-1 hasher using the collision-detecting
// implementation go-git registers as its default.
func New() stdhash.Hash {
	return sha1cd.New()
}

// Sum computes the digest of b in one call.
func Sum(b []byte) [Size]byte {
	h := sha1cd.New()
	h.Write(b) //nolint:errcheck
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// OID is the 40-character lowercase hex representation of a 20-byte
// SHA-1 digest, and the canonical name of every stored object.
type OID string

// Zero is the OID with all-zero bytes. IsZero treats it and the empty
// OID alike; a commit with no parent carries the empty OID.
const Zero OID = "0000000000000000000000000000000000000000"

// FromBytes converts a raw 20-byte digest to its hex OID form.
func FromBytes(b []byte) (OID, error) {
	if len(b) != Size {
		return "", errors.Errorf("hash: expected %d raw bytes, got %d", Size, len(b))
	}
	return OID(hex.EncodeToString(b)), nil
}

// Bytes converts the OID back to its raw 20-byte form.
func (o OID) Bytes() ([]byte, error) {
	if len(o) != HexSize {
		return nil, errors.Errorf("hash: %q is not a %d-character hex id", string(o), HexSize)
	}
	b, err := hex.DecodeString(string(o))
	if err != nil {
		return nil, errors.Wrapf(err, "hash: invalid hex id %q", string(o))
	}
	return b, nil
}

// String returns the OID as a plain string.
func (o OID) String() string {
	return string(o)
}

// IsZero reports whether o is the all-zero id.
func (o OID) IsZero() bool {
	return o == "" || o == Zero
}
