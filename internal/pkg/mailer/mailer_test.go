package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	m := New("Attendance Insight", "no-reply@example.com")

	msg, err := m.Compose(
		"manager@example.com",
		"Employee Attendance Summary",
		"Please find the summary attached.",
		Attachment{
			Filename:    "summary.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        []byte("spreadsheet bytes"),
		},
	)
	require.NoError(t, err)

	text := string(msg)
	assert.Contains(t, text, "From: Attendance Insight <no-reply@example.com>\r\n")
	assert.Contains(t, text, "To: manager@example.com\r\n")
	assert.Contains(t, text, "Subject: Employee Attendance Summary\r\n")
	assert.Contains(t, text, "Content-Type: multipart/mixed")
	assert.Contains(t, text, `Content-Disposition: attachment; filename="summary.xlsx"`)
	assert.Contains(t, text, "Content-Transfer-Encoding: base64")
	assert.True(t, strings.HasSuffix(text, "--attendance-insight-mixed--\r\n"))
}

func TestCompose_InvalidRecipient(t *testing.T) {
	m := New("Attendance Insight", "no-reply@example.com")

	_, err := m.Compose("not-an-address", "subject", "body", Attachment{
		Filename: "summary.xlsx",
		Data:     []byte("x"),
	})
	assert.Error(t, err)
}

func TestCompose_EmptyAttachment(t *testing.T) {
	m := New("Attendance Insight", "no-reply@example.com")

	_, err := m.Compose("manager@example.com", "subject", "body", Attachment{
		Filename: "summary.xlsx",
	})
	assert.Error(t, err)
}
