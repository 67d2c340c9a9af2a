// Package shortid generates the random identifiers used as short URL keys.
package shortid

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Length is the number of symbols in every generated id.
	Length = 6

	symbols = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Generate returns a uniformly random string of Length symbols over [a-zA-Z0-9].
func Generate() (string, error) {
	result := make([]byte, Length)
	max := big.NewInt(int64(len(symbols)))

	for i := range result {
		randomIndex, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("in internal/shortid/shortid.go/Generate(): error while `rand.Int()` calling: %w", err)
		}
		result[i] = symbols[randomIndex.Int64()]
	}

	return string(result), nil
}

// IsValid reports whether id has the shape of a generated id.
func IsValid(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}

	return true
}
