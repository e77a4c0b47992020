// Package usecase implements application management and the application token
// authenticator.
package usecase

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
)

// ApplicationRepository defines persistence operations for applications.
// Implementations join the ambient transaction carried by ctx.
type ApplicationRepository interface {
	Create(ctx context.Context, app *applicationDomain.Application) error

	// Update writes the mutable fields. Returns ErrApplicationNotFound if no row matched.
	Update(ctx context.Context, app *applicationDomain.Application) error

	// Get returns ErrApplicationNotFound if the id does not exist.
	Get(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error)

	// GetForUpdate is Get with a row lock for the rest of the transaction.
	GetForUpdate(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error)

	List(ctx context.Context, offset, limit int) ([]*applicationDomain.Application, error)

	Delete(ctx context.Context, id snowflake.ID) error

	UpdateSecretSalt(ctx context.Context, id snowflake.ID, secretSalt string, updatedAt time.Time) error
}

// TokenUseCase issues and verifies application tokens.
//
// A token is A.B.C where A is the base64url application id, B the base64url
// issuance time in milliseconds and C the HMAC-SHA256 of "A.B" keyed with the
// application's current salt. Tokens do not expire; rolling the salt revokes them.
type TokenUseCase interface {
	// CreateToken mints a token for app, issued now, using app.SecretSalt.
	CreateToken(ctx context.Context, app *applicationDomain.Application) (string, error)

	// CreateTokenByID loads the application first. Returns ErrUnknownApplication
	// when the id does not resolve.
	CreateTokenByID(ctx context.Context, id snowflake.ID) (string, error)

	// DecodeToken verifies token against the current salt of the application it
	// names. Every negative outcome is a *DecodeFailure matching ErrInvalidToken.
	// Storage errors are returned unchanged.
	DecodeToken(ctx context.Context, token string) (*applicationDomain.DecodedToken, error)

	// GetApplication is DecodeToken returning only the application.
	GetApplication(ctx context.Context, token string) (*applicationDomain.Application, error)
}

// ApplicationUseCase manages the application lifecycle.
type ApplicationUseCase interface {
	// Create registers an application with a fresh id and salt and returns a first token.
	Create(
		ctx context.Context,
		input *applicationDomain.CreateApplicationInput,
	) (*applicationDomain.CreateApplicationOutput, error)

	Get(ctx context.Context, id snowflake.ID) (*applicationDomain.Application, error)

	List(ctx context.Context, offset, limit int) ([]*applicationDomain.Application, error)

	// Update changes name, access level and disabled state. The salt is untouched.
	Update(
		ctx context.Context,
		id snowflake.ID,
		input *applicationDomain.UpdateApplicationInput,
	) (*applicationDomain.Application, error)

	Delete(ctx context.Context, id snowflake.ID) error

	// RollSalt replaces the salt, revoking every token issued so far, and
	// returns a token signed with the new salt.
	RollSalt(ctx context.Context, id snowflake.ID) (*applicationDomain.RollSaltOutput, error)

	// IssueToken mints an additional token for an existing application.
	IssueToken(ctx context.Context, id snowflake.ID) (string, error)
}
