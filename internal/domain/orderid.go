package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	readableAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	readableIDLength = 7
)

// NewReadableID returns a short order token without look-alike characters
// (no 0/O, 1/I/L).
func NewReadableID() (string, error) {
	size := big.NewInt(int64(len(readableAlphabet)))
	b := make([]byte, readableIDLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b[i] = readableAlphabet[n.Int64()]
	}
	return string(b), nil
}
