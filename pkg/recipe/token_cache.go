package recipe

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type (
	// AccessTokenSource hands out the bearer token for the recipe provider.
	AccessTokenSource interface {
		AccessToken(ctx context.Context) (string, error)
		Invalidate()
	}

	tokenFetcher interface {
		Token(ctx context.Context) (*oauth2.Token, error)
	}

	// TokenCache keeps one client-credentials token in memory until it expires.
	TokenCache struct {
		mu      sync.Mutex
		fetcher tokenFetcher
		token   *oauth2.Token
	}
)

func NewClientCredentialsConfig(clientID, clientSecret, tokenURL string, scopes ...string) *clientcredentials.Config {
	if len(scopes) == 0 {
		scopes = []string{"basic"}
	}
	return &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
}

func NewTokenCache(config *clientcredentials.Config) *TokenCache {
	return &TokenCache{fetcher: config}
}

func (c *TokenCache) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token.Valid() {
		return c.token.AccessToken, nil
	}

	token, err := c.fetcher.Token(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	return token.AccessToken, nil
}

// Invalidate drops the cached token, e.g. after the provider rejected it.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}
