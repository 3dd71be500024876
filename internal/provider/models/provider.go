package models

import (
	"strings"
	"unicode/utf8"

	id "provider-registry/pkg/domain"
	dErrors "provider-registry/pkg/domain-errors"
)

const (
	MaxFullNameLength  = 128
	MaxSpecialtyLength = 128
	MaxNPINumberLength = 32
)

// Provider is the aggregate root for a registered healthcare provider.
//
// Invariants:
//   - ID and Owner are immutable after construction
//   - FullName, Specialty and NPINumber are non-empty and bounded
//   - CreatedAt is immutable; UpdatedAt >= CreatedAt
//   - UpdatedAt advances on every successful mutation, including status toggles
//   - Status transitions: active ↔ inactive only; records are never deleted
//
// CreatedAt and UpdatedAt are logical times from the registry clock, not
// wall-clock timestamps.
type Provider struct {
	ID        id.ProviderID `json:"provider_id"`
	Owner     id.Principal  `json:"principal"`
	FullName  string        `json:"full_name"`
	Specialty string        `json:"specialty"`
	NPINumber string        `json:"npi_number"`
	Active    bool          `json:"active"`
	CreatedAt int64         `json:"created_at"`
	UpdatedAt int64         `json:"updated_at"`
}

// Profile is the mutable descriptive part of a provider record.
type Profile struct {
	FullName  string
	Specialty string
	NPINumber string
}

// Normalize trims surrounding whitespace from every field.
func (p *Profile) Normalize() {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Specialty = strings.TrimSpace(p.Specialty)
	p.NPINumber = strings.TrimSpace(p.NPINumber)
}

// Validate enforces the profile invariants. Call Normalize first.
func (p Profile) Validate() error {
	if err := checkField("full_name", p.FullName, MaxFullNameLength); err != nil {
		return err
	}
	if err := checkField("specialty", p.Specialty, MaxSpecialtyLength); err != nil {
		return err
	}
	return checkField("npi_number", p.NPINumber, MaxNPINumberLength)
}

func checkField(name, value string, maxLen int) error {
	if value == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, name+" cannot be empty")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return dErrors.New(dErrors.CodeInvariantViolation, name+" is too long")
	}
	if !utf8.ValidString(value) || strings.ContainsFunc(value, isControl) {
		return dErrors.New(dErrors.CodeInvariantViolation, name+" contains invalid characters")
	}
	return nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// NewProvider constructs an active provider owned by owner, stamped at now.
func NewProvider(providerID id.ProviderID, owner id.Principal, profile Profile, now int64) (*Provider, error) {
	if providerID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "provider_id cannot be empty")
	}
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner principal cannot be empty")
	}
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Provider{
		ID:        providerID,
		Owner:     owner,
		FullName:  profile.FullName,
		Specialty: profile.Specialty,
		NPINumber: profile.NPINumber,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy reports whether principal registered this provider.
func (p *Provider) IsOwnedBy(principal id.Principal) bool {
	return !principal.IsZero() && p.Owner == principal
}

// CanMutate checks that caller may change this record.
func (p *Provider) CanMutate(caller id.Principal) error {
	if !p.IsOwnedBy(caller) {
		return dErrors.New(dErrors.CodeForbidden, "caller does not own this provider")
	}
	return nil
}

// ApplyProfile overwrites the descriptive fields. The profile must already be
// normalized and validated.
func (p *Provider) ApplyProfile(profile Profile, now int64) {
	p.FullName = profile.FullName
	p.Specialty = profile.Specialty
	p.NPINumber = profile.NPINumber
	p.touch(now)
}

// ApplyDeactivation marks the provider inactive. Deactivating an inactive
// provider is accepted and still advances UpdatedAt.
func (p *Provider) ApplyDeactivation(now int64) {
	p.Active = false
	p.touch(now)
}

// ApplyReactivation marks the provider active. Reactivating an active
// provider is accepted and still advances UpdatedAt.
func (p *Provider) ApplyReactivation(now int64) {
	p.Active = true
	p.touch(now)
}

// touch never moves UpdatedAt backwards.
func (p *Provider) touch(now int64) {
	if now > p.UpdatedAt {
		p.UpdatedAt = now
	}
}

// Clone returns a copy safe to hand across store boundaries.
func (p *Provider) Clone() *Provider {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
