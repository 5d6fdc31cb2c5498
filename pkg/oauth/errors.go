package oauth

import "errors"

var (
	// ErrNoCredentials is returned when the client credentials file is
	// missing or unparseable.
	ErrNoCredentials = errors.New("oauth: cannot load client credentials")

	// ErrAccessDenied is returned when the user declines the consent
	// screen or the provider redirects back without a code.
	ErrAccessDenied = errors.New("oauth: authorization denied")

	// ErrStateMismatch is returned when the callback state does not match
	// the one sent with the consent URL.
	ErrStateMismatch = errors.New("oauth: state mismatch in callback")

	// ErrExchangeFailed is returned when trading the authorization code
	// for a token fails.
	ErrExchangeFailed = errors.New("oauth: code exchange failed")
)
