package dto

import (
	"time"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
)

// ApplicationResponse represents an application in API responses. The salt is never included.
type ApplicationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AccessLevel string    `json:"access_level"`
	Disabled    bool      `json:"disabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapApplicationToResponse converts a domain application to an API response.
func MapApplicationToResponse(app *applicationDomain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID.String(),
		Name:        app.Name,
		AccessLevel: string(app.AccessLevel),
		Disabled:    app.Disabled,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

// ListApplicationsResponse represents a page of applications.
type ListApplicationsResponse struct {
	Data []ApplicationResponse `json:"data"`
}

// MapApplicationsToListResponse converts domain applications to a list response.
func MapApplicationsToListResponse(apps []*applicationDomain.Application) ListApplicationsResponse {
	data := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		data = append(data, MapApplicationToResponse(app))
	}
	return ListApplicationsResponse{Data: data}
}

// ApplicationTokenResponse carries an application together with a freshly minted token.
// Returned by create and roll-salt.
type ApplicationTokenResponse struct {
	Application ApplicationResponse `json:"application"`
	Token       string              `json:"token"` //nolint:gosec // returned to the owner
}

// TokenResponse carries a freshly minted token.
type TokenResponse struct {
	Token string `json:"token"` //nolint:gosec // returned to the owner
}

// VerifyTokenResponse reports whether a token verified. A failed verification
// carries no reason.
type VerifyTokenResponse struct {
	Valid       bool                               `json:"valid"`
	Application *applicationDomain.ApplicationInfo `json:"application,omitempty"`
	IssuedAt    *time.Time                         `json:"issued_at,omitempty"`
}
