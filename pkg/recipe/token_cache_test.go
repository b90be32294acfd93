package recipe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type countingFetcher struct {
	calls int
	ttl   time.Duration
	err   error
}

func (f *countingFetcher) Token(context.Context) (*oauth2.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls++
	return &oauth2.Token{
		AccessToken: "token-" + string(rune('0'+f.calls)),
		Expiry:      time.Now().Add(f.ttl),
	}, nil
}

func TestTokenCache_ReusesValidToken(t *testing.T) {
	fetcher := &countingFetcher{ttl: time.Hour}
	cache := &TokenCache{fetcher: fetcher}

	for i := 0; i < 3; i++ {
		token, err := cache.AccessToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "token-1", token)
	}
	assert.Equal(t, 1, fetcher.calls)
}

func TestTokenCache_RefreshesExpiredAndInvalidated(t *testing.T) {
	// oauth2 treats tokens within 10s of expiry as expired
	fetcher := &countingFetcher{ttl: 5 * time.Second}
	cache := &TokenCache{fetcher: fetcher}

	_, err := cache.AccessToken(context.Background())
	require.NoError(t, err)
	token, err := cache.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)

	fetcher.ttl = time.Hour
	cache.Invalidate()
	token, err = cache.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-3", token)
}

func TestTokenCache_PropagatesFetchError(t *testing.T) {
	cache := &TokenCache{fetcher: &countingFetcher{err: errors.New("denied")}}
	_, err := cache.AccessToken(context.Background())
	assert.EqualError(t, err, "denied")
}

func TestTokenCache_ClientCredentialsGrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "basic", r.PostForm.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","expires_in":86400}`))
	}))
	defer server.Close()

	cache := NewTokenCache(NewClientCredentialsConfig("id", "secret", server.URL))
	token, err := cache.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
