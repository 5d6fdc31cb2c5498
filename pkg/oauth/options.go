package oauth

import "net/http"

// Option configures a GoogleAuthorizer.
type Option func(*options)

type options struct {
	httpClient *http.Client
	prompt     func(authURL string)
}

// WithHTTPClient sets a custom HTTP client for token requests.
// This is useful for testing with httptest servers or injecting
// custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithAuthPrompt replaces how the consent URL is presented to the user.
// The default prints it to stderr. Tests use this to drive the callback
// without a browser.
func WithAuthPrompt(prompt func(authURL string)) Option {
	return func(o *options) {
		o.prompt = prompt
	}
}
