package utils

import "crypto/rand"

const (
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomString draws length characters from alphabet using crypto/rand.
func RandomString(alphabet string, length int) (string, error) {
	buf := make([]byte, length)
	out := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := 0; i < length; i++ {
		out[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(out), nil
}

// SessionToken returns a 32-character opaque session token (~190 bits).
func SessionToken() (string, error) {
	return RandomString(tokenAlphabet, 32)
}

// ReferralCode returns a 10-character upper-case referral code.
func ReferralCode() (string, error) {
	return RandomString(codeAlphabet, 10)
}
