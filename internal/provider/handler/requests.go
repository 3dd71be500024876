package handler

import (
	"strings"

	"provider-registry/internal/provider/models"
	id "provider-registry/pkg/domain"
	"provider-registry/pkg/platform/validation"
)

// RegisterProviderRequest is the body of POST /providers.
type RegisterProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required,max=64"`
	FullName   string `json:"full_name" validate:"required,max=128"`
	Specialty  string `json:"specialty" validate:"required,max=128"`
	NPINumber  string `json:"npi_number" validate:"required,max=32"`
}

func (r *RegisterProviderRequest) Normalize() {
	r.ProviderID = strings.TrimSpace(r.ProviderID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Specialty = strings.TrimSpace(r.Specialty)
	r.NPINumber = strings.TrimSpace(r.NPINumber)
}

// Validate checks field presence and bounds, then parses the provider id.
func (r *RegisterProviderRequest) Validate() (id.ProviderID, error) {
	if err := validation.Struct(r); err != nil {
		return "", err
	}
	return id.ParseProviderID(r.ProviderID)
}

func (r *RegisterProviderRequest) Profile() models.Profile {
	return models.Profile{FullName: r.FullName, Specialty: r.Specialty, NPINumber: r.NPINumber}
}

// UpdateProviderRequest is the body of PUT /providers/{providerID}.
type UpdateProviderRequest struct {
	FullName  string `json:"full_name" validate:"required,max=128"`
	Specialty string `json:"specialty" validate:"required,max=128"`
	NPINumber string `json:"npi_number" validate:"required,max=32"`
}

func (r *UpdateProviderRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Specialty = strings.TrimSpace(r.Specialty)
	r.NPINumber = strings.TrimSpace(r.NPINumber)
}

func (r *UpdateProviderRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateProviderRequest) Profile() models.Profile {
	return models.Profile{FullName: r.FullName, Specialty: r.Specialty, NPINumber: r.NPINumber}
}

// MutationResponse mirrors the registry's {ok: provider_id} result.
type MutationResponse struct {
	OK string `json:"ok"`
}

type PrincipalProviderResponse struct {
	ProviderID string `json:"provider_id"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
