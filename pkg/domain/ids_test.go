package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ixcbridge/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseTenantID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseTenantID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseTenantID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseTenantID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, TenantID(validUUID), id)
		assert.Equal(t, validUUID.String(), id.String())
	})
}

func TestParseID_RejectsHostileInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE clientes_sync;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccountID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	assert.True(t, TenantID{}.IsNil())
	assert.True(t, AccountID{}.IsNil())
	assert.False(t, TenantID(uuid.New()).IsNil())
}

func TestIDsMarshalAsStrings(t *testing.T) {
	tenantID := TenantID(uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"))
	raw, err := json.Marshal(struct {
		Tenant TenantID `json:"tenant"`
	}{tenantID})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tenant":"550e8400-e29b-41d4-a716-446655440000"}`, string(raw))

	var decoded struct {
		Account AccountID `json:"account"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"account":"550e8400-e29b-41d4-a716-446655440000"}`), &decoded))
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", decoded.Account.String())
}
