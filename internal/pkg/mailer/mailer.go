package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"

	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
)

// Attachment is a file carried by a composed message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer composes ready-to-send MIME messages. It deliberately owns no
// transport: the delivery collaborator receives the finished bytes and
// handles SMTP, credentials and retries on its own.
type Mailer struct {
	fromName string
	fromAddr string
}

func New(fromName, fromAddr string) *Mailer {
	return &Mailer{
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

// Compose builds a multipart/mixed message with a plain-text body and a
// single attachment, returning the raw RFC 5322 bytes.
func (m *Mailer) Compose(to, subject, body string, att Attachment) ([]byte, error) {
	if !validator.IsValidEmail(to) {
		return nil, fmt.Errorf("invalid recipient address: %q", to)
	}
	if len(att.Data) == 0 {
		return nil, fmt.Errorf("attachment %q is empty", att.Filename)
	}

	const boundary = "attendance-insight-mixed"

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", m.fromName), m.fromAddr))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", boundary))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString(fmt.Sprintf("Content-Type: %s\r\n", att.ContentType))
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n", att.Filename))
	msg.WriteString("\r\n")
	writeBase64Wrapped(&msg, att.Data)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return msg.Bytes(), nil
}

// writeBase64Wrapped encodes data in 76-character lines per RFC 2045.
func writeBase64Wrapped(buf *bytes.Buffer, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	const lineLen = 76
	for len(encoded) > lineLen {
		buf.WriteString(encoded[:lineLen])
		buf.WriteString("\r\n")
		encoded = encoded[lineLen:]
	}
	buf.WriteString(encoded)
}
