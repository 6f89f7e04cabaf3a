package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"notesapi/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

var testSMTPConfig = config.SMTPConfig{
	Host:     "smtp.example.com",
	Port:     587,
	From:     "no-reply@example.com",
	FromName: "Notes API",
	BaseURL:  "https://notes.example.com",
}

func renderMessage(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestUserFirstName(t *testing.T) {
	assert.Equal(t, "Ada", User{Name: "Ada Lovelace"}.FirstName())
	assert.Equal(t, "Grace", User{Name: "  Grace  "}.FirstName())
	assert.Equal(t, "", User{Name: ""}.FirstName())
}

func TestRenderTemplate(t *testing.T) {
	email := NewEmail(User{Name: "Ada Lovelace", Email: "ada@example.com"},
		"https://notes.example.com/verifyemail/123456", testSMTPConfig, &fakeSender{})

	body, err := email.RenderTemplate(TemplateVerificationCode, SubjectVerificationCode)
	require.NoError(t, err)
	assert.Contains(t, body, "Hi Ada,")
	assert.Contains(t, body, "https://notes.example.com/verifyemail/123456")
	assert.Contains(t, body, "<title>"+SubjectVerificationCode+"</title>")
	assert.Contains(t, body, "<style>")

	body, err = email.RenderTemplate(TemplateResetPassword, SubjectResetPassword)
	require.NoError(t, err)
	assert.Contains(t, body, "reset the password")
}

func TestRenderTemplateEscapesName(t *testing.T) {
	email := NewEmail(User{Name: "<script>alert(1)</script> Smith", Email: "x@example.com"},
		"https://notes.example.com", testSMTPConfig, &fakeSender{})

	body, err := email.RenderTemplate(TemplateVerificationCode, SubjectVerificationCode)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	email := NewEmail(User{Name: "Ada"}, "", testSMTPConfig, &fakeSender{})

	_, err := email.RenderTemplate("welcome", "Welcome")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	err = email.Send(context.Background(), "welcome", "Welcome")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestSendVerificationCode(t *testing.T) {
	sender := &fakeSender{}
	email := NewEmail(User{Name: "Ada Lovelace", Email: "ada@example.com"},
		"https://notes.example.com/verifyemail/123456", testSMTPConfig, sender)

	require.NoError(t, email.SendVerificationCode(context.Background()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{`"Ada Lovelace" <ada@example.com>`}, msg.GetToString())
	assert.Equal(t, []string{`"Notes API" <no-reply@example.com>`}, msg.GetFromString())

	raw := renderMessage(t, msg)
	assert.Contains(t, raw, "Subject: "+SubjectVerificationCode)
	assert.Contains(t, raw, "Reply-To:")
	assert.Contains(t, raw, "<no-reply@example.com>")
	assert.Contains(t, raw, "text/html")
}

func TestSendPasswordResetToken(t *testing.T) {
	sender := &fakeSender{}
	email := NewEmail(User{Name: "Grace", Email: "grace@example.com"},
		"https://notes.example.com/resetpassword/tok", testSMTPConfig, sender)

	require.NoError(t, email.SendPasswordResetToken(context.Background()))
	require.Len(t, sender.sent, 1)

	raw := renderMessage(t, sender.sent[0])
	assert.Contains(t, raw, "Subject: "+SubjectResetPassword)
}

func TestSendPropagatesTransportError(t *testing.T) {
	transportErr := errors.New("535 authentication failed")
	email := NewEmail(User{Name: "Ada", Email: "ada@example.com"}, "https://x", testSMTPConfig, &fakeSender{err: transportErr})

	err := email.SendVerificationCode(context.Background())
	assert.ErrorIs(t, err, transportErr)
}

func TestSendRejectsBadRecipient(t *testing.T) {
	sender := &fakeSender{}
	email := NewEmail(User{Name: "Ada", Email: "not an address"}, "https://x", testSMTPConfig, sender)

	assert.Error(t, email.SendVerificationCode(context.Background()))
	assert.Empty(t, sender.sent)
}
