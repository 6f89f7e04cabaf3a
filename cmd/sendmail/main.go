package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapi/config"
	"notesapi/services"
	"notesapi/utils"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	kindVerification = "verification"
	kindReset        = "reset"
)

func main() {
	kind := flag.String("kind", kindVerification, "email to send: verification or reset")
	name := flag.String("name", "", "recipient display name")
	email := flag.String("email", "", "recipient address (defaults to SMTP_TO)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall send timeout")
	verify := flag.String("verify", "", "check a received code or token for -email instead of sending")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}
	utils.SetupLogging(utils.LogConfig{
		Level:    utils.GetEnvAsString("LOG_LEVEL", "info"),
		JSON:     utils.GetEnvAsBool("LOG_FORMAT_JSON", false),
		ToStdout: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if *verify != "" {
		if err := verifyLink(*kind, *email, *verify); err != nil {
			log.WithError(err).Error("verification failed")
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, *kind, *name, *email); err != nil {
		log.WithError(err).Error("sendmail failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, kind, name, email string) error {
	cfg, err := config.LoadSMTPConfig()
	if err != nil {
		return err
	}
	if email == "" {
		email = cfg.To
	}

	url, err := buildLink(kind, cfg, email, time.Now())
	if err != nil {
		return err
	}

	client, err := services.NewMailClient(cfg)
	if err != nil {
		return err
	}

	message := services.NewEmail(services.User{Name: name, Email: email}, url, cfg, client)
	switch kind {
	case kindReset:
		return message.SendPasswordResetToken(ctx)
	default:
		return message.SendVerificationCode(ctx)
	}
}

// buildLink returns the link embedded in the email: a verification code path or a
// signed reset token path under APP_BASE_URL.
func buildLink(kind string, cfg config.SMTPConfig, email string, now time.Time) (string, error) {
	switch kind {
	case kindVerification:
		code, err := services.GenerateVerificationCode(cfg.TokenSecret, email, now)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s/verifyemail/%s", cfg.BaseURL, code), nil
	case kindReset:
		token, err := services.GenerateResetToken(cfg.TokenSecret, email, now, services.ResetTokenTTL)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s/resetpassword/%s", cfg.BaseURL, token), nil
	default:
		return "", fmt.Errorf("unknown kind %q, want %s or %s", kind, kindVerification, kindReset)
	}
}

// verifyLink checks the code or token taken from a link built by buildLink.
func verifyLink(kind, email, value string) error {
	cfg, err := config.LoadSMTPConfig()
	if err != nil {
		return err
	}
	if email == "" {
		email = cfg.To
	}
	return checkLink(kind, cfg.TokenSecret, email, value, time.Now())
}

func checkLink(kind, secret, email, value string, now time.Time) error {
	switch kind {
	case kindVerification:
		valid, err := services.ValidateVerificationCode(secret, email, value, now)
		if err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("verification code for %s is invalid or expired", email)
		}
	case kindReset:
		subject, err := services.ParseResetToken(secret, value, now)
		if err != nil {
			return err
		}
		if subject != email {
			return fmt.Errorf("reset token was issued for %s, not %s", subject, email)
		}
	default:
		return fmt.Errorf("unknown kind %q, want %s or %s", kind, kindVerification, kindReset)
	}
	log.WithFields(log.Fields{"kind": kind, "email": email}).Info("link is valid")
	return nil
}
