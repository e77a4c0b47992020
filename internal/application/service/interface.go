// Package service provides the technical building blocks of application
// tokens: HMAC signing, token encoding, salt generation, snowflake ids and
// salt sealing at rest.
package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// SaltService generates application salts.
type SaltService interface {
	// GenerateSalt returns a fresh random salt, hex encoded.
	GenerateSalt() (string, error)
}

// IDGenerator issues snowflake ids.
type IDGenerator interface {
	Generate() snowflake.ID
}

// SaltSealer protects salts at rest. Unseal(Seal(s)) == s.
type SaltSealer interface {
	Seal(ctx context.Context, salt string) (string, error)
	Unseal(ctx context.Context, sealed string) (string, error)
	Close() error
}
