package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrSignatureMismatch is returned by Unsign when the envelope was not produced
// by Sign with the same secret.
var ErrSignatureMismatch = errors.New("signature mismatch")

// Signer appends and checks an HMAC-SHA256 signature on a string payload.
// The envelope is payload + "." + base64url(mac), unpadded.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer keyed with secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the signed envelope for payload.
func (s *Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return payload + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Unsign returns the payload of envelope when its signature is valid. The
// signature is everything after the last '.'. The comparison covers the whole
// re-signed envelope in constant time, so non-canonical encodings of a valid
// mac are rejected too.
func (s *Signer) Unsign(envelope string) (string, error) {
	i := strings.LastIndexByte(envelope, '.')
	if i < 0 {
		return "", ErrSignatureMismatch
	}

	payload := envelope[:i]
	if !hmac.Equal([]byte(s.Sign(payload)), []byte(envelope)) {
		return "", ErrSignatureMismatch
	}
	return payload, nil
}
