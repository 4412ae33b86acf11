package service

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/storefront-service/internal/repository"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	cartCodeLength     = 6
	discountCodeLength = 8

	maxCodeAttempts = 8
)

// CodeGenerator returns a random code of n characters.
type CodeGenerator func(n int) string

// RandomCode draws each character uniformly from A-Z0-9.
func RandomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// insertWithUniqueCode calls insert with fresh codes until one is accepted by
// the storage unique constraint. Only duplicate-key failures are retried.
func insertWithUniqueCode[T any](ctx context.Context, gen CodeGenerator, n int, insert func(code string) (T, error)) (T, error) {
	var zero T
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code := gen(n)
		v, err := insert(code)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return zero, err
		}
		zerolog.Ctx(ctx).Warn().Str("code", code).Int("attempt", attempt).Msg("generated code collided, retrying")
	}
	return zero, errors.Wrapf(ErrExhaustedRetries, "after %d attempts", maxCodeAttempts)
}
