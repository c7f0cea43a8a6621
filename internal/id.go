package internal

import "math/rand/v2"

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateID returns a random alphanumeric string, used to give every in-memory database its
// own name.
func GenerateID() string {
	const n = 10
	b := make([]byte, n)
	for i := range b {
		b[i] = idCharset[rand.IntN(len(idCharset))]
	}
	return string(b)
}
