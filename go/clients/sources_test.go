package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    AuthScheme
		wantErr bool
	}{
		{"bearer", AuthSchemeBearer, false},
		{" Bearer ", AuthSchemeBearer, false},
		{"x-api-key", AuthSchemeAPIKey, false},
		{"X-API-KEY", AuthSchemeAPIKey, false},
		{"basic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAuthScheme(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyAuth(t *testing.T) {
	c := NewBaseClient("http://example")
	ApplyAuth(c, AuthSchemeBearer, "k")
	assert.Equal(t, "Bearer k", c.headers[AuthorizationHeader])

	c = NewBaseClient("http://example")
	ApplyAuth(c, AuthSchemeAPIKey, "k")
	assert.Equal(t, "k", c.headers[APIKeyHeader])
	assert.NotContains(t, c.headers, AuthorizationHeader)

	c = NewBaseClient("http://example")
	ApplyAuth(c, AuthSchemeBearer, "")
	assert.Empty(t, c.headers)
}
