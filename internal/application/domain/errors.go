package domain

import (
	"github.com/tregmine/webapi/internal/errors"
)

// Application errors.
var (
	// ErrApplicationNotFound indicates no application has the requested id.
	ErrApplicationNotFound = errors.Wrap(errors.ErrNotFound, "application not found")

	// ErrUnknownApplication is returned when a token is requested for an id that does not resolve.
	ErrUnknownApplication = errors.Wrap(errors.ErrNotFound, "unknown application")

	// ErrInvalidToken is the single outcome of every failed token verification.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrApplicationDisabled indicates a validly authenticated but disabled application.
	ErrApplicationDisabled = errors.Wrap(errors.ErrForbidden, "application disabled")

	// ErrInsufficientAccess indicates the caller's access level is too low for the route.
	ErrInsufficientAccess = errors.Wrap(errors.ErrForbidden, "insufficient access level")

	// ErrInvalidAccessLevel indicates an unknown access level name.
	ErrInvalidAccessLevel = errors.Wrap(errors.ErrInvalidInput, "invalid access level")
)
