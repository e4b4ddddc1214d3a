package maven

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"
)

// Checksums holds the hex digests of one file, keyed by algorithm.
type Checksums map[string]string

// Compute returns the digests of data for every algorithm in [ChecksumAlgorithms].
func Compute(data []byte) Checksums {
	sums := make(Checksums, len(ChecksumAlgorithms))
	for _, algo := range ChecksumAlgorithms {
		h := newHash(algo)
		h.Write(data)
		sums[algo] = hex.EncodeToString(h.Sum(nil))
	}
	return sums
}

// ParseChecksum extracts the digest from a sidecar body.
// Sidecars may carry a trailing file name ("<digest>  file.jar") or whitespace.
func ParseChecksum(body string) string {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func newHash(algo string) hash.Hash {
	switch algo {
	case "md5":
		return md5.New()
	case "sha256":
		return sha256.New()
	case "sha512":
		return sha512.New()
	default:
		return sha1.New()
	}
}
