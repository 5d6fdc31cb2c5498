package gmail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"

	"github.com/mergekit/mergemail/pkg/mailer"
)

// buildRawMessage assembles a multipart/alternative MIME message and
// encodes it the way the Gmail API expects: base64url over the raw bytes.
func buildRawMessage(from string, email *mailer.Email) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := func(key, value string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", key, value)
	}

	header("From", from)
	header("To", strings.Join(email.To, ", "))
	if len(email.CC) > 0 {
		header("Cc", strings.Join(email.CC, ", "))
	}
	if len(email.BCC) > 0 {
		header("Bcc", strings.Join(email.BCC, ", "))
	}
	if email.ReplyTo != "" {
		header("Reply-To", email.ReplyTo)
	}
	for key, value := range email.Headers {
		header(key, value)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	buf.WriteString("\r\n")

	if err := writePart(mw, "text/plain", email.Text); err != nil {
		return "", err
	}
	if email.HTML != "" {
		if err := writePart(mw, "text/html", email.HTML); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

func writePart(mw *multipart.Writer, contentType, body string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType+`; charset="UTF-8"`)
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}

	qp := quotedprintable.NewWriter(part)
	if _, err := io.WriteString(qp, body); err != nil {
		return err
	}
	return qp.Close()
}
