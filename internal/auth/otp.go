package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const OTPLength = 6

var otpUpperBound = big.NewInt(1_000_000)

// GenerateOTPCode draws a uniform code in 000000..999999.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpUpperBound)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}
