package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

var ten = big.NewInt(10)

// GenerateOTPCode generates a cryptographically secure numeric code of the
// given length. Digits are drawn independently, so leading zeros are valid.
func GenerateOTPCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}
