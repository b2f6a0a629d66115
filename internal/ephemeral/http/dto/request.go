// Package dto provides data transfer objects for the ephemeral HTTP API.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	"github.com/allisson/ephemeral/internal/ephemeral/domain"
	customValidation "github.com/allisson/ephemeral/internal/validation"
)

// KeypairRequest names the keypair to generate or delete.
//
// ID is kept raw: a JSON string is a text identifier, any other non-null value is
// a structured identifier.
type KeypairRequest struct {
	ID json.RawMessage `json:"id"`
}

// Validate checks if the keypair request is valid.
func (r *KeypairRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.JSONValue),
	)
}

// Identifier converts the raw id into a domain identifier.
func (r *KeypairRequest) Identifier() (domain.Identifier, error) {
	return domain.ParseIdentifierJSON(r.ID)
}

// BoxRequest contains the parameters for boxing a message.
type BoxRequest struct {
	Message   *string         `json:"message"`
	PublicKey string          `json:"public_key"`
	Context   json.RawMessage `json:"context,omitempty"`
}

// Validate checks if the box request is valid.
func (r *BoxRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message, validation.NotNil),
		validation.Field(&r.PublicKey,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Context, customValidation.JSONValue),
	)
}

// Options converts the optional context into box options.
func (r *BoxRequest) Options() (domain.BoxOptions, error) {
	return parseOptions(r.Context)
}

// UnboxRequest contains the parameters for opening a boxed message.
type UnboxRequest struct {
	ID         json.RawMessage `json:"id"`
	Ciphertext string          `json:"ciphertext"`
	Context    json.RawMessage `json:"context,omitempty"`
}

// Validate checks if the unbox request is valid.
func (r *UnboxRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, customValidation.JSONValue),
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
		validation.Field(&r.Context, customValidation.JSONValue),
	)
}

// Identifier converts the raw id into a domain identifier.
func (r *UnboxRequest) Identifier() (domain.Identifier, error) {
	return domain.ParseIdentifierJSON(r.ID)
}

// Options converts the optional context into box options.
func (r *UnboxRequest) Options() (domain.BoxOptions, error) {
	return parseOptions(r.Context)
}

func parseOptions(raw json.RawMessage) (domain.BoxOptions, error) {
	boxContext, err := domain.ParseContextJSON(raw)
	if err != nil {
		return domain.BoxOptions{}, err
	}
	return domain.BoxOptions{Context: boxContext}, nil
}
