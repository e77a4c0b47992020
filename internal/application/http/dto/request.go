// Package dto provides data transfer objects for the application endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	applicationDomain "github.com/tregmine/webapi/internal/application/domain"
	customValidation "github.com/tregmine/webapi/internal/validation"
)

// CreateApplicationRequest contains the parameters for registering an application.
type CreateApplicationRequest struct {
	Name        string `json:"name"`
	AccessLevel string `json:"access_level"`
	Disabled    bool   `json:"disabled"`
}

// Validate checks if the create application request is valid.
func (r *CreateApplicationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.AccessLevel,
			validation.Required,
			customValidation.OneOf(applicationDomain.AccessLevelValues()...),
		),
	)
}

// ToInput converts the request into use case input. Call Validate first.
func (r *CreateApplicationRequest) ToInput() *applicationDomain.CreateApplicationInput {
	return &applicationDomain.CreateApplicationInput{
		Name:        r.Name,
		AccessLevel: applicationDomain.AccessLevel(r.AccessLevel),
		Disabled:    r.Disabled,
	}
}

// UpdateApplicationRequest contains the mutable fields of an application.
type UpdateApplicationRequest struct {
	Name        string `json:"name"`
	AccessLevel string `json:"access_level"`
	Disabled    bool   `json:"disabled"`
}

// Validate checks if the update application request is valid.
func (r *UpdateApplicationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.AccessLevel,
			validation.Required,
			customValidation.OneOf(applicationDomain.AccessLevelValues()...),
		),
	)
}

// ToInput converts the request into use case input. Call Validate first.
func (r *UpdateApplicationRequest) ToInput() *applicationDomain.UpdateApplicationInput {
	return &applicationDomain.UpdateApplicationInput{
		Name:        r.Name,
		AccessLevel: applicationDomain.AccessLevel(r.AccessLevel),
		Disabled:    r.Disabled,
	}
}

// VerifyTokenRequest carries a third-party token to check.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the verify token request is valid.
func (r *VerifyTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, validation.Length(1, 1024)),
	)
}
