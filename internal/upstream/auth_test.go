package upstream

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizationHeader(t *testing.T) {
	encode := func(s string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name       string
		credential string
		expected   string
	}{
		{name: "pre-encoded header is used verbatim", credential: "Basic dXNlcjpwYXNz", expected: "Basic dXNlcjpwYXNz"},
		{name: "principal and key are encoded as-is", credential: "42:secret", expected: encode("42:secret")},
		{name: "bare key gets the default principal", credential: "secret", expected: encode("1:secret")},
		{name: "surrounding whitespace is ignored", credential: "  secret\n", expected: encode("1:secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AuthorizationHeader(tt.credential))
		})
	}
}

func TestTaxIDVariants(t *testing.T) {
	t.Run("formatted CPF yields digits then the input", func(t *testing.T) {
		assert.Equal(t, []string{"12345678900", "123.456.789-00"}, TaxIDVariants("123.456.789-00"))
	})

	t.Run("bare CPF yields digits then the punctuated form", func(t *testing.T) {
		assert.Equal(t, []string{"12345678900", "123.456.789-00"}, TaxIDVariants("12345678900"))
	})

	t.Run("CNPJ gets its punctuated form", func(t *testing.T) {
		assert.Equal(t,
			[]string{"12345678000190", "12.345.678/0001-90"},
			TaxIDVariants("12345678000190"))
	})

	t.Run("other lengths keep digits and input only", func(t *testing.T) {
		assert.Equal(t, []string{"1234", "12-34"}, TaxIDVariants("12-34"))
	})

	t.Run("blank input yields nothing", func(t *testing.T) {
		assert.Empty(t, TaxIDVariants("  "))
	})
}
