package cryptox

import (
	"crypto/rand"
	"math/big"
)

// OTPLength is the number of digits in a password-reset code.
const OTPLength = 6

// GenerateOTPCode returns a fixed-length numeric one-time code drawn from
// crypto/rand. Leading zeros are allowed; the code is a string, never an
// integer, so "012345" stays six digits.
func GenerateOTPCode() (string, error) {
	const digits = "0123456789"

	code := make([]byte, OTPLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}
