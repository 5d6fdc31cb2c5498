// Package oauth obtains and caches the Google credential used to send
// mail through the Gmail API.
//
// The authorizer follows the installed-app flow: client credentials are
// read from a Google credentials JSON file, and the resulting token is
// cached in the working directory and reused across runs. When no valid
// token is cached, the authorizer starts a loopback HTTP server, prints
// the consent URL, and waits for the browser redirect to deliver the
// authorization code. Refreshed tokens are re-persisted transparently.
//
//	auth, err := oauth.NewGoogleAuthorizer(cfg)
//	client, err := auth.Client(ctx) // *http.Client with auto-refresh
package oauth
