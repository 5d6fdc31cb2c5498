package oauth

// GmailSendScope is the only scope the CLI needs: permission to send
// mail as the authorized user, nothing more.
const GmailSendScope = "https://www.googleapis.com/auth/gmail.send"

// Config holds Google OAuth configuration for the installed-app flow.
type Config struct {
	// CredentialsFile is a Google client credentials JSON file
	// ("installed" or "web" format).
	CredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	// TokenFile is where the authorized token is cached between runs.
	TokenFile string `env:"GOOGLE_TOKEN_FILE" envDefault:"token.json"`
	// Scopes defaults to gmail.send when empty.
	Scopes []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:","`
	// ListenAddr is the loopback address for the consent redirect.
	// Port 0 picks a free port.
	ListenAddr string `env:"GOOGLE_OAUTH_LISTEN_ADDR" envDefault:"127.0.0.1:0"`
}
