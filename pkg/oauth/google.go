package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
)

// GoogleAuthorizer obtains Gmail credentials via the installed-app flow
// and caches the token on disk. Acquire the credential once at startup;
// it is read-only for the remainder of the run.
type GoogleAuthorizer struct {
	config     *oauth2.Config
	tokenFile  string
	listenAddr string
	httpClient *http.Client
	prompt     func(authURL string)
}

// NewGoogleAuthorizer reads client credentials from cfg.CredentialsFile.
// Returns ErrNoCredentials if the file is missing or malformed.
func NewGoogleAuthorizer(cfg Config, opts ...Option) (*GoogleAuthorizer, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, errors.Join(ErrNoCredentials, err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{GmailSendScope}
	}

	oc, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, errors.Join(ErrNoCredentials, err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.prompt == nil {
		o.prompt = defaultPrompt
	}

	listenAddr := cfg.ListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	return &GoogleAuthorizer{
		config:     oc,
		tokenFile:  cfg.TokenFile,
		listenAddr: listenAddr,
		httpClient: o.httpClient,
		prompt:     o.prompt,
	}, nil
}

// Token returns a valid token: the cached one if still valid, a silent
// refresh if possible, or the result of the interactive flow.
func (a *GoogleAuthorizer) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := loadToken(a.tokenFile)
	if err == nil {
		if tok.Valid() {
			return tok, nil
		}
		if tok.RefreshToken != "" {
			fresh, rerr := a.config.TokenSource(a.contextWithHTTPClient(ctx), tok).Token()
			if rerr == nil {
				if serr := saveToken(a.tokenFile, fresh); serr != nil {
					return nil, serr
				}
				return fresh, nil
			}
			// Refresh token revoked or expired; re-run the consent flow.
		}
	}
	return a.authorize(ctx)
}

// Client returns an HTTP client that attaches and auto-refreshes the
// credential. Refreshed tokens are written back to the cache file.
func (a *GoogleAuthorizer) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}

	src := &persistingTokenSource{
		src:    a.config.TokenSource(a.contextWithHTTPClient(ctx), tok),
		path:   a.tokenFile,
		access: tok.AccessToken,
	}
	return oauth2.NewClient(a.contextWithHTTPClient(ctx), src), nil
}

type callbackResult struct {
	code    string
	state   string
	errCode string
}

// authorize runs the interactive consent flow: loopback server, consent
// URL prompt, code exchange, token persistence.
func (a *GoogleAuthorizer) authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", a.listenAddr)
	if err != nil {
		return nil, fmt.Errorf("oauth: listen for callback: %w", err)
	}

	state := uuid.NewString()
	cfg := *a.config
	cfg.RedirectURL = fmt.Sprintf("http://%s/oauth/callback", ln.Addr().String())

	results := make(chan callbackResult, 1)
	router := chi.NewRouter()
	router.Get("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		res := callbackResult{
			code:    r.URL.Query().Get("code"),
			state:   r.URL.Query().Get("state"),
			errCode: r.URL.Query().Get("error"),
		}
		select {
		case results <- res:
		default: // duplicate callback, first one wins
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if res.errCode != "" {
			fmt.Fprint(w, "<html><body><p>Authorization was denied. You can close this window.</p></body></html>")
			return
		}
		fmt.Fprint(w, "<html><body><p>Authorization complete. You can close this window.</p></body></html>")
	})

	srv := &http.Server{Handler: router}

	var res callbackResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer srv.Shutdown(context.Background())
		select {
		case res = <-results:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	a.prompt(cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("oauth: authorization flow: %w", err)
	}

	switch {
	case res.errCode != "":
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, res.errCode)
	case res.state != state:
		return nil, ErrStateMismatch
	case res.code == "":
		return nil, ErrAccessDenied
	}

	tok, err := cfg.Exchange(a.contextWithHTTPClient(ctx), res.code)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}

	if err := saveToken(a.tokenFile, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (a *GoogleAuthorizer) contextWithHTTPClient(ctx context.Context) context.Context {
	if a.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}
	return ctx
}

func defaultPrompt(authURL string) {
	fmt.Fprintf(os.Stderr, "Open the following URL in your browser to authorize sending:\n\n  %s\n\n", authURL)
}
