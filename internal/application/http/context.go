// Package http provides the HTTP handlers and middleware for application
// authentication and management.
package http

import (
	"context"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
)

// callerKey is a context key type for the authenticated application.
type callerKey struct{}

// targetKey is a context key type for the application a route operates on.
type targetKey struct{}

// WithApplication stores the authenticated application in the context.
// This is called by ApplicationAuthenticationMiddleware after the token verified.
func WithApplication(ctx context.Context, app *applicationDomain.Application) context.Context {
	return context.WithValue(ctx, callerKey{}, app)
}

// GetApplication retrieves the authenticated application from the context.
// Returns (app, true) if present, or (nil, false) if authentication did not run.
func GetApplication(ctx context.Context) (*applicationDomain.Application, bool) {
	app, ok := ctx.Value(callerKey{}).(*applicationDomain.Application)
	return app, ok
}

// WithTargetApplication stores the application resolved from the :id path parameter.
func WithTargetApplication(ctx context.Context, app *applicationDomain.Application) context.Context {
	return context.WithValue(ctx, targetKey{}, app)
}

// GetTargetApplication retrieves the application resolved by ApplicationPrepMiddleware.
func GetTargetApplication(ctx context.Context) (*applicationDomain.Application, bool) {
	app, ok := ctx.Value(targetKey{}).(*applicationDomain.Application)
	return app, ok
}
