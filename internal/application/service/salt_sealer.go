package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Keeper drivers selectable through SALT_KEEPER_URI.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// OpenSaltSealer opens a keeper backed sealer for keeperURI, or a
// pass-through sealer when keeperURI is empty.
func OpenSaltSealer(ctx context.Context, keeperURI string) (SaltSealer, error) {
	if keeperURI == "" {
		return NewPlainSaltSealer(), nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open salt keeper: %w", err)
	}
	return NewKeeperSaltSealer(keeper), nil
}

type plainSaltSealer struct{}

// NewPlainSaltSealer returns a sealer that stores salts unchanged.
func NewPlainSaltSealer() SaltSealer {
	return plainSaltSealer{}
}

func (plainSaltSealer) Seal(_ context.Context, salt string) (string, error)     { return salt, nil }
func (plainSaltSealer) Unseal(_ context.Context, sealed string) (string, error) { return sealed, nil }
func (plainSaltSealer) Close() error                                          { return nil }

type keeperSaltSealer struct {
	keeper *secrets.Keeper
}

// NewKeeperSaltSealer seals salts with keeper. The stored form is base64 of the ciphertext.
func NewKeeperSaltSealer(keeper *secrets.Keeper) SaltSealer {
	return &keeperSaltSealer{keeper: keeper}
}

func (s *keeperSaltSealer) Seal(ctx context.Context, salt string) (string, error) {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(salt))
	if err != nil {
		return "", fmt.Errorf("failed to seal salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *keeperSaltSealer) Unseal(ctx context.Context, sealed string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed salt: %w", err)
	}
	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to unseal salt: %w", err)
	}
	return string(plaintext), nil
}

func (s *keeperSaltSealer) Close() error {
	return s.keeper.Close()
}
