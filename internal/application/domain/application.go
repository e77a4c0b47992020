// Package domain defines registered third-party applications and the signed
// identity tokens they present to the API.
//
// An application owns a secret salt that keys the HMAC of every token issued
// for it. Rolling the salt revokes all tokens issued before the roll.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Application is a registered API consumer.
type Application struct {
	ID          snowflake.ID
	Name        string
	AccessLevel AccessLevel
	Disabled    bool
	SecretSalt  string //nolint:gosec // HMAC key, never serialized
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplicationInfo is the public view of an application. It never carries the salt.
type ApplicationInfo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	AccessLevel AccessLevel `json:"access_level"`
	Disabled    bool        `json:"disabled"`
}

// Info returns the public view of the application.
func (a *Application) Info() ApplicationInfo {
	return ApplicationInfo{
		ID:          a.ID.String(),
		Name:        a.Name,
		AccessLevel: a.AccessLevel,
		Disabled:    a.Disabled,
	}
}

// CreateApplicationInput contains the parameters for registering an application.
// The id and salt are generated.
type CreateApplicationInput struct {
	Name        string
	AccessLevel AccessLevel
	Disabled    bool
}

// CreateApplicationOutput is returned once on creation, together with a first token.
type CreateApplicationOutput struct {
	Application *Application
	Token       string
}

// UpdateApplicationInput contains the mutable fields of an application.
type UpdateApplicationInput struct {
	Name        string
	AccessLevel AccessLevel
	Disabled    bool
}

// RollSaltOutput carries the application after rotation and a token minted with the new salt.
type RollSaltOutput struct {
	Application *Application
	Token       string
}
