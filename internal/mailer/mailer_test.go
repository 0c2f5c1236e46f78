package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Headers(t *testing.T) {
	t.Parallel()

	m := &SMTPMailer{Host: "smtp.x.com", Port: 587, From: "noreply@x.com"}

	msg := m.message("a@x.com", "http://x.com/auth/verify?id=1&token=2")
	require.NotNil(t, msg)
	assert.Equal(t, []string{"noreply@x.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Verify your email"}, msg.GetHeader("Subject"))
}

func TestMessage_SenderAddressAccepted(t *testing.T) {
	t.Parallel()

	m := &SMTPMailer{Host: "smtp.x.com", Port: 587, From: "noreply@x.com"}

	msg := m.message("noreply@x.com", "http://x.com/auth/verify?id=1&token=2")
	require.NotNil(t, msg)
	assert.Equal(t, []string{"noreply@x.com"}, msg.GetHeader("To"))
}
