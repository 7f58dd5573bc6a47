package clients

import (
	"fmt"
	"strings"
)

// AuthScheme selects how the partner API key travels on each request
type AuthScheme string

const (
	// AuthSchemeBearer sends "Authorization: Bearer {key}"
	AuthSchemeBearer AuthScheme = "bearer"

	// AuthSchemeAPIKey sends "x-api-key: {key}"
	AuthSchemeAPIKey AuthScheme = "x-api-key"
)

const (
	AuthorizationHeader = "Authorization"
	APIKeyHeader        = "x-api-key"
)

// ParseAuthScheme normalizes a configured scheme name
func ParseAuthScheme(value string) (AuthScheme, error) {
	scheme := AuthScheme(strings.ToLower(strings.TrimSpace(value)))
	if !ValidateAuthScheme(scheme) {
		return "", fmt.Errorf("unknown auth scheme %q", value)
	}
	return scheme, nil
}

// ValidateAuthScheme checks if the scheme is one we know how to send
func ValidateAuthScheme(scheme AuthScheme) bool {
	switch scheme {
	case AuthSchemeBearer, AuthSchemeAPIKey:
		return true
	default:
		return false
	}
}

// ApplyAuth sets the header for scheme on the client. An empty key sets nothing.
func ApplyAuth(c *BaseClient, scheme AuthScheme, apiKey string) {
	if apiKey == "" {
		return
	}

	switch scheme {
	case AuthSchemeAPIKey:
		c.SetHeader(APIKeyHeader, apiKey)
	default:
		c.SetHeader(AuthorizationHeader, "Bearer "+apiKey)
	}
}
