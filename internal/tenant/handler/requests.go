package handler

import (
	"time"

	"ixcbridge/internal/tenant/models"
	"ixcbridge/internal/tenant/service"
	id "ixcbridge/pkg/domain"
	dErrors "ixcbridge/pkg/domain-errors"
)

// maxCredentialLength bounds the stored "user:token" pair.
const maxCredentialLength = 512

// ConfigRequest is the body of create and update calls.
type ConfigRequest struct {
	DisplayName string `json:"display_name"`
	BaseURL     string `json:"base_url"`
	Credential  string `json:"credential"`
}

// Validate enforces size limits; field rules live in the service.
func (r *ConfigRequest) Validate() error {
	if len(r.Credential) > maxCredentialLength {
		return dErrors.New(dErrors.CodeValidation, "credential is too long")
	}
	return nil
}

func (r *ConfigRequest) Input() service.ConfigInput {
	return service.ConfigInput{
		DisplayName: r.DisplayName,
		BaseURL:     r.BaseURL,
		Credential:  r.Credential,
	}
}

// ConfigResponse never carries the raw credential.
type ConfigResponse struct {
	ID          id.TenantID `json:"id"`
	DisplayName string      `json:"display_name"`
	BaseURL     string      `json:"base_url"`
	Credential  string      `json:"credential"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toResponse(cfg *models.TenantConfig) ConfigResponse {
	return ConfigResponse{
		ID:          cfg.ID,
		DisplayName: cfg.DisplayName,
		BaseURL:     cfg.BaseURL,
		Credential:  cfg.MaskedCredential(),
		Active:      cfg.Active,
		CreatedAt:   cfg.CreatedAt,
		UpdatedAt:   cfg.UpdatedAt,
	}
}
