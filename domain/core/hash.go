package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, enough for log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// HashWeights fingerprints a model's intercept, weights and imputation
// values independent of map iteration order.
func HashWeights(intercept float64, weights, imputation map[string]float64) Hash {
	var b strings.Builder
	fmt.Fprintf(&b, "intercept=%g;", intercept)
	writeSorted(&b, "w", weights)
	writeSorted(&b, "i", imputation)
	return NewHash([]byte(b.String()))
}

func writeSorted(b *strings.Builder, prefix string, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "%s:%s=%g;", prefix, k, m[k])
	}
}
