package gmail

// Config holds Gmail provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	SenderEmail string `env:"GMAIL_FROM_EMAIL"`
	SenderName  string `env:"GMAIL_FROM_NAME"`
	// BaseURL overrides the Gmail API endpoint, mainly for tests.
	BaseURL string `env:"GMAIL_API_BASE_URL"`
}
