package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPMax is the exclusive upper bound for generated codes (6 digits).
const OTPMax = 1_000_000

// GenerateOTP returns a code uniformly distributed in [0, 999999].
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(OTPMax))
	if err != nil {
		return 0, fmt.Errorf("generate otp: %w", err)
	}
	return int(n.Int64()), nil
}

// FormatOTP renders a code zero-padded to six digits.
func FormatOTP(code int) string {
	return fmt.Sprintf("%06d", code)
}
