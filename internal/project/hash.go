package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 sum; source.File.Hash has the same shape.
type Digest [sha256.Size]byte

// Hex returns the lowercase hex spelling used for cache file names.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Fingerprint mixes content with every salt. Each salt is length-prefixed,
// so ("ab", "c") and ("a", "bc") never collide.
func Fingerprint(content Digest, salts ...string) Digest {
	buf := make([]byte, 0, len(content)+8*len(salts))
	buf = append(buf, content[:]...)
	for _, s := range salts {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(s))) // #nosec G115 -- salts are short strings
		buf = append(buf, s...)
	}
	return sha256.Sum256(buf)
}
