package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/collabhub/backend/internal/constants"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(length int) (string, error) {
	max := big.NewInt(int64(len(idCharset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		b[i] = idCharset[n.Int64()]
	}
	return string(b), nil
}

// GenerateID generates a prefixed random identifier, e.g. "USER_a1B2c3D4e5F6".
func GenerateID(prefix string) (string, error) {
	suffix, err := randomString(constants.IDSuffixLength)
	if err != nil {
		return "", err
	}
	return prefix + suffix, nil
}

// GenerateJoinCode generates a short shareable project code.
// Uniqueness is checked by the caller against the datastore.
func GenerateJoinCode() (string, error) {
	return randomString(constants.JoinCodeLength)
}
