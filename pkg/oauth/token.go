package oauth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// loadToken reads a cached token from path.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("oauth: parse token file %s: %w", path, err)
	}
	return &tok, nil
}

// saveToken persists a token to path with owner-only permissions.
func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("oauth: encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("oauth: write token file %s: %w", path, err)
	}
	return nil
}

// persistingTokenSource wraps a TokenSource and writes refreshed tokens
// back to the cache file so the next run skips the consent flow.
type persistingTokenSource struct {
	src    oauth2.TokenSource
	path   string
	access string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.access {
		s.access = tok.AccessToken
		if err := saveToken(s.path, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}
