package mailer

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_DisabledWithoutHost(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	m, err := NewMailerWithConfig(Config{}, &logger)
	require.NoError(t, err)
	assert.False(t, m.Enabled())

	err = m.SendHTML([]string{"jane@example.com"}, "Hello", "<p>hi</p>")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "message dropped")
}

func TestMailer_NoRecipients(t *testing.T) {
	logger := zerolog.Nop()

	m, err := NewMailerWithConfig(Config{}, &logger)
	require.NoError(t, err)

	assert.ErrorIs(t, m.SendHTML(nil, "Hello", "<p>hi</p>"), ErrNoRecipients)
}

func TestMailer_IncompleteConfig(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewMailerWithConfig(Config{Host: "smtp.example.com", Port: 587}, &logger)
	assert.EqualError(t, err, "missing SMTP_USERNAME environment variable")
}

func TestMailer_Enabled(t *testing.T) {
	logger := zerolog.Nop()

	m, err := NewMailerWithConfig(Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "shelter@example.com",
	}, &logger)
	require.NoError(t, err)
	assert.True(t, m.Enabled())
}
