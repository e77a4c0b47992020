package service

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
)

// ParsedToken holds the structural parts of a token before its signature is checked.
type ParsedToken struct {
	Raw string
	// Payload is the literal "A.B" prefix that the signature covers.
	Payload       string
	ApplicationID string
	ID            snowflake.ID
	IssuedAt      time.Time
}

// EncodeToken signs id and issuedAt with salt into an A.B.C token.
func EncodeToken(id snowflake.ID, issuedAt time.Time, salt string) string {
	a := base64.RawURLEncoding.EncodeToString([]byte(id.String()))
	b := base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(issuedAt.UnixMilli(), 10)))
	return NewSigner(salt).Sign(a + "." + b)
}

// ParseToken checks the structure of token and decodes its first two segments.
// It does not verify the signature.
func ParseToken(token string) (*ParsedToken, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonMalformed, nil)
	}

	rawID, err := base64.RawURLEncoding.DecodeString(segments[0])
	if err != nil {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonBadEncoding, err)
	}
	rawMillis, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonBadEncoding, err)
	}

	millis, err := strconv.ParseInt(string(rawMillis), 10, 64)
	if err != nil {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonBadTimestamp, err)
	}
	if millis > applicationDomain.MaxTimestampMillis || millis < -applicationDomain.MaxTimestampMillis {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonBadTimestamp, nil)
	}

	id, err := snowflake.ParseString(string(rawID))
	if err != nil {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonBadApplicationID, err)
	}
	if id <= 0 {
		return nil, applicationDomain.NewDecodeFailure(applicationDomain.ReasonBadApplicationID, nil)
	}

	return &ParsedToken{
		Raw:           token,
		Payload:       segments[0] + "." + segments[1],
		ApplicationID: string(rawID),
		ID:            id,
		IssuedAt:      time.UnixMilli(millis).UTC(),
	}, nil
}
