package utils

import "crypto/rand"

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns a random code suitable for password-reset
// flows, drawn from crypto/rand.
func GenerateRandomToken(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	token := make([]byte, length)
	for i, b := range buf {
		token[i] = tokenCharset[int(b)%len(tokenCharset)]
	}
	return string(token)
}
