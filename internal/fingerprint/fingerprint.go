// Package fingerprint computes the content identifiers used throughout the
// object store and commit codec.
//
// The spec's Non-goals explicitly disclaim cryptographic integrity ("hash is
// used only as an identifier, not a trust token"), so this uses XXH3-128 —
// the same class of fast, non-cryptographic, deterministic hash the
// reference implementation already reaches for when it needs a stable
// content identifier — rather than SHA-1/SHA-256.
package fingerprint

import (
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// Fingerprint is the opaque, lowercase-hex content identifier used as an
// object-store key and as a commit id. It is a nominal type so that a
// fingerprint can never be silently passed where a branch name or a raw
// path is expected.
type Fingerprint string

// Empty reports whether this fingerprint is the zero value, used throughout
// the engine to represent "no parent" / "no tip" / "path absent from a
// manifest".
func (f Fingerprint) Empty() bool { return f == "" }

func (f Fingerprint) String() string { return string(f) }

// Of computes the fingerprint of data.
func Of(data []byte) Fingerprint {
	sum := xxh3.Hash128(data).Bytes()
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// OfConcat computes the fingerprint of the concatenation of parts, without
// allocating an intermediate joined byte slice larger than necessary.
func OfConcat(parts ...[]byte) Fingerprint {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return Of(buf)
}
