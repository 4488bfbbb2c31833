package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "ixcbridge/pkg/domain"
)

func TestMaskedCredential(t *testing.T) {
	assert.Equal(t, "", (&TenantConfig{}).MaskedCredential())
	assert.Equal(t, "***", (&TenantConfig{Credential: "abc"}).MaskedCredential())
	assert.Equal(t, "******cdef", (&TenantConfig{Credential: "123456cdef"}).MaskedCredential())
}

func TestUpstreamContext(t *testing.T) {
	cfg := &TenantConfig{
		ID:         id.TenantID(uuid.New()),
		BaseURL:    "https://erp.example.com/",
		Credential: "12:token",
	}
	ctx := cfg.UpstreamContext()
	assert.Equal(t, cfg.ID, ctx.TenantID)
	assert.Equal(t, "https://erp.example.com", ctx.Target())
	assert.Equal(t, "12:token", ctx.Credential)
}
