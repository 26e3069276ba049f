// Package codegen provides short-code generation.
// Generators should be safe for concurrent use.
package codegen

import (
	"crypto/rand"
	"errors"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Generator generates short codes. It performs no uniqueness check; the
// storage layer's unique constraint is the arbiter, and callers retry on
// conflict.
type Generator interface {
	Generate() (string, error)
}

// base62Generator implements Generator using random base62 strings.
// It is stateless and safe for concurrent use.
type base62Generator struct {
	length int
}

// NewBase62 returns a Generator producing random base62 codes of the given
// fixed length.
func NewBase62(length int) (Generator, error) {
	if length <= 0 {
		return nil, errors.New("length must be positive")
	}
	return &base62Generator{length: length}, nil
}

// Generate returns a random base62 string of the configured length.
func (g *base62Generator) Generate() (string, error) {
	b := make([]byte, g.length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	for i := range b {
		b[i] = base62Chars[int(b[i])%len(base62Chars)]
	}

	return string(b), nil
}
