package gmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mergekit/mergemail/pkg/mailer"
)

const defaultBaseURL = "https://gmail.googleapis.com"

// Sender implements mailer.Sender using the Gmail REST API.
// The HTTP client must carry OAuth2 credentials for the gmail.send scope;
// see pkg/oauth for obtaining one.
type Sender struct {
	client *http.Client
	config Config
}

// New creates a Gmail sender on top of an authorized HTTP client.
func New(client *http.Client, cfg Config) *Sender {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Sender{
		client: client,
		config: cfg,
	}
}

type sendRequest struct {
	Raw string `json:"raw"`
}

// apiError is the error envelope Gmail returns on non-2xx responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if len(email.To) == 0 {
		return mailer.ErrNoRecipient
	}

	from := email.From
	if from == "" {
		from = mailer.FormatAddress(s.config.SenderName, s.config.SenderEmail)
	}

	raw, err := buildRawMessage(from, email)
	if err != nil {
		return fmt.Errorf("gmail: build message: %w", err)
	}

	payload, err := json.Marshal(sendRequest{Raw: raw})
	if err != nil {
		return fmt.Errorf("gmail: encode request: %w", err)
	}

	url := s.config.BaseURL + "/gmail/v1/users/me/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gmail: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("gmail: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gmail: send failed: status=%d message=%s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("gmail: send failed: status=%d", resp.StatusCode)
	}

	return nil
}
