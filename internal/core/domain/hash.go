package domain

import "strings"

// HashAlgorithm names the algorithm a Hash value was computed with.
type HashAlgorithm string

const (
	// HashUnknown is used when the algorithm cannot be inferred.
	HashUnknown HashAlgorithm = "UNKNOWN"
	// HashMD5 is the MD5 message digest.
	HashMD5 HashAlgorithm = "MD5"
	// HashSHA1 is the SHA-1 digest.
	HashSHA1 HashAlgorithm = "SHA-1"
	// HashSHA256 is the SHA-256 digest.
	HashSHA256 HashAlgorithm = "SHA-256"
	// HashSHA384 is the SHA-384 digest.
	HashSHA384 HashAlgorithm = "SHA-384"
	// HashSHA512 is the SHA-512 digest.
	HashSHA512 HashAlgorithm = "SHA-512"
)

// Hash is a content hash of a downloadable artifact.
type Hash struct {
	Value     string        `json:"value"`
	Algorithm HashAlgorithm `json:"algorithm"`
}

// NewHash creates a Hash and infers the algorithm from the length of the hex value.
func NewHash(value string) Hash {
	value = strings.TrimSpace(value)
	return Hash{Value: value, Algorithm: inferAlgorithm(value)}
}

func inferAlgorithm(value string) HashAlgorithm {
	switch len(value) {
	case 32:
		return HashMD5
	case 40:
		return HashSHA1
	case 64:
		return HashSHA256
	case 96:
		return HashSHA384
	case 128:
		return HashSHA512
	default:
		return HashUnknown
	}
}

// Equal reports whether both hashes use the same algorithm and value.
// Hex values are compared case-insensitively.
func (h Hash) Equal(other Hash) bool {
	return h.algorithm() == other.algorithm() && strings.EqualFold(h.Value, other.Value)
}

// IsEmpty reports whether the hash has no value.
func (h Hash) IsEmpty() bool {
	return h.Value == ""
}

// algorithm falls back to inference for hashes decoded without an explicit algorithm.
func (h Hash) algorithm() HashAlgorithm {
	if h.Algorithm == "" {
		return inferAlgorithm(h.Value)
	}
	return h.Algorithm
}
