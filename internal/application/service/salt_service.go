package service

import (
	"crypto/rand"
	"encoding/hex"

	apperrors "github.com/tregmine/webapi/internal/errors"
)

// DefaultSaltLength is the number of random bytes in a salt when none is configured.
const DefaultSaltLength = 32

type saltService struct {
	length int
}

// NewSaltService creates a SaltService producing length random bytes per salt.
func NewSaltService(length int) SaltService {
	if length <= 0 {
		length = DefaultSaltLength
	}
	return &saltService{length: length}
}

func (s *saltService) GenerateSalt() (string, error) {
	buf := make([]byte, s.length)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "failed to generate salt")
	}
	return hex.EncodeToString(buf), nil
}
