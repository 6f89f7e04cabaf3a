package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"notesapi/config"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

const (
	TemplateVerificationCode = "verification_code"
	TemplateResetPassword    = "reset_password"

	SubjectVerificationCode = "Your account verification code"
	SubjectResetPassword    = "Your password reset token (valid for only 10 minutes)"
)

var ErrUnknownTemplate = errors.New("unknown email template")

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Sender delivers fully built messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type User struct {
	Name  string
	Email string
}

// FirstName is the first whitespace separated word of the name.
func (u User) FirstName() string {
	if fields := strings.Fields(u.Name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

type templateData struct {
	FirstName string
	Subject   string
	URL       string
}

// Email is one recipient plus the link to embed in whichever template gets sent.
type Email struct {
	user     User
	url      string
	fromName string
	fromAddr string
	sender   Sender
}

func NewEmail(user User, url string, cfg config.SMTPConfig, sender Sender) *Email {
	return &Email{
		user:     user,
		url:      url,
		fromName: cfg.FromName,
		fromAddr: cfg.From,
		sender:   sender,
	}
}

// NewMailClient builds an SMTP client that requires STARTTLS and authenticates with
// PLAIN credentials.
func NewMailClient(cfg config.SMTPConfig) (*mail.Client, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
	)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}
	return client, nil
}

// RenderTemplate fills the named template with the recipient's first name, the
// subject and the link.
func (e *Email) RenderTemplate(name, subject string) (string, error) {
	tmpl := emailTemplates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var buf bytes.Buffer
	data := templateData{
		FirstName: e.user.FirstName(),
		Subject:   subject,
		URL:       e.url,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Send renders templateName and delivers it. Replies go to the sender address.
func (e *Email) Send(ctx context.Context, templateName, subject string) error {
	body, err := e.RenderTemplate(templateName, subject)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(e.fromName, e.fromAddr); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.ReplyToFormat(e.fromName, e.fromAddr); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}
	if err := msg.AddToFormat(e.user.Name, e.user.Email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := e.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending %s email: %w", templateName, err)
	}

	log.WithFields(log.Fields{
		"template": templateName,
		"to":       e.user.Email,
	}).Info("email sent")
	return nil
}

func (e *Email) SendVerificationCode(ctx context.Context) error {
	return e.Send(ctx, TemplateVerificationCode, SubjectVerificationCode)
}

func (e *Email) SendPasswordResetToken(ctx context.Context) error {
	return e.Send(ctx, TemplateResetPassword, SubjectResetPassword)
}
