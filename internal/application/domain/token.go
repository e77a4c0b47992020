package domain

import (
	"time"
)

// MaxTimestampMillis bounds the issuance timestamp to ±100,000,000 days from
// the Unix epoch. Tokens outside that range do not decode.
const MaxTimestampMillis int64 = 8_640_000_000_000_000

// DecodedToken is the result of a successful verification.
type DecodedToken struct {
	// ApplicationID is the decoded first segment, the application id as a decimal string.
	ApplicationID string
	// IssuedAt is the decoded second segment.
	IssuedAt time.Time
	// Payload is the signed content, "A.B".
	Payload     string
	Application *Application
}

// DecodeReason names the check a token failed. It is for logs and metrics
// only and never reaches the caller.
type DecodeReason string

const (
	ReasonMalformed          DecodeReason = "malformed"
	ReasonBadEncoding        DecodeReason = "bad_encoding"
	ReasonBadTimestamp       DecodeReason = "bad_timestamp"
	ReasonBadApplicationID   DecodeReason = "bad_application_id"
	ReasonUnknownApplication DecodeReason = "unknown_application"
	ReasonSignatureMismatch  DecodeReason = "signature_mismatch"
	ReasonPayloadMismatch    DecodeReason = "payload_mismatch"
)

// DecodeFailure is returned for every negative verification outcome.
// It matches ErrInvalidToken with errors.Is.
type DecodeFailure struct {
	Reason DecodeReason
	Err    error
}

// NewDecodeFailure creates a DecodeFailure with an optional cause.
func NewDecodeFailure(reason DecodeReason, err error) *DecodeFailure {
	return &DecodeFailure{Reason: reason, Err: err}
}

func (f *DecodeFailure) Error() string {
	if f.Err == nil {
		return "invalid token: " + string(f.Reason)
	}
	return "invalid token: " + string(f.Reason) + ": " + f.Err.Error()
}

func (f *DecodeFailure) Unwrap() []error {
	if f.Err == nil {
		return []error{ErrInvalidToken}
	}
	return []error{ErrInvalidToken, f.Err}
}
