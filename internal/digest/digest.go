// Package digest computes an optional cryptographic digest reported next to
// the additive checksum.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/deploymenttheory/go-addsum/internal/errors"
)

// Algorithm represents supported digest algorithms
type Algorithm string

const (
	// None disables the companion digest
	None Algorithm = ""

	// SHA256 algorithm
	SHA256 Algorithm = "sha256"

	// BLAKE2b256 is BLAKE2b with a 256-bit output
	BLAKE2b256 Algorithm = "blake2b-256"

	// SHA3256 is SHA3 with a 256-bit output
	SHA3256 Algorithm = "sha3-256"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{SHA256, BLAKE2b256, SHA3256}

// Hasher computes hex digests for one algorithm
type Hasher interface {
	// Algorithm returns the algorithm name
	Algorithm() Algorithm

	// Hash hashes the provided data
	Hash(data []byte) (string, error)
}

type hasherImpl struct {
	algorithm Algorithm
	newHash   func() hash.Hash
}

// NewHasher creates a new Hasher for the specified algorithm
func NewHasher(algorithm Algorithm) (Hasher, error) {
	var newHashFunc func() hash.Hash

	switch Algorithm(strings.ToLower(string(algorithm))) {
	case SHA256:
		newHashFunc = sha256.New
	case BLAKE2b256:
		newHashFunc = func() hash.Hash {
			// New256 only fails for keys longer than 64 bytes.
			h, _ := blake2b.New256(nil)
			return h
		}
	case SHA3256:
		newHashFunc = sha3.New256
	default:
		return nil, fmt.Errorf("%w: '%s'", errors.ErrUnsupportedDigest, algorithm)
	}

	return &hasherImpl{
		algorithm: Algorithm(strings.ToLower(string(algorithm))),
		newHash:   newHashFunc,
	}, nil
}

func (h *hasherImpl) Algorithm() Algorithm {
	return h.algorithm
}

// Hash hashes the provided data
func (h *hasherImpl) Hash(data []byte) (string, error) {
	hasher := h.newHash()
	if _, err := hasher.Write(data); err != nil {
		return "", fmt.Errorf("hash operation failed: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ParseAlgorithm validates a configured algorithm name. An empty name is None.
func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if algorithm == None {
		return None, nil
	}

	for _, a := range Algorithms {
		if a == algorithm {
			return a, nil
		}
	}

	return None, fmt.Errorf("%w: '%s'", errors.ErrUnsupportedDigest, name)
}
