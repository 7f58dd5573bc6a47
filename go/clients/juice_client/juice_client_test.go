package juice_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekstills/boat/go/clients"
)

func TestFetchLeaderboard_BearerAuth(t *testing.T) {
	var gotPath, gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("x-api-key")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret", AuthScheme: clients.AuthSchemeBearer})
	body, err := c.FetchLeaderboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "[]", string(body))
	assert.Equal(t, "/leaderboard", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Empty(t, gotAPIKey)
}

func TestFetchLeaderboard_APIKeyAuthWithCode(t *testing.T) {
	var gotPath, gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("x-api-key")
		w.Write([]byte(`{"leaderboard":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "secret", AuthScheme: clients.AuthSchemeAPIKey, Code: "GANG"})
	_, err := c.FetchLeaderboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/leaderboard/GANG", gotPath)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "secret", gotAPIKey)
}

func TestFetchLeaderboard_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchLeaderboard(context.Background())
	require.Error(t, err)

	var statusErr *clients.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "boom", statusErr.Body)
}

func TestFetchLeaderboard_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := c.FetchLeaderboard(context.Background())
	assert.Error(t, err)
}

func TestLeaderboardPath(t *testing.T) {
	assert.Equal(t, "/leaderboard", LeaderboardPath(""))
	assert.Equal(t, "/leaderboard/BOAT", LeaderboardPath("BOAT"))
	assert.Equal(t, "/leaderboard/a%2Fb", LeaderboardPath("a/b"))
}
