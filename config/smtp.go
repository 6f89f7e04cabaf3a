package config

import (
	"fmt"
	"strconv"
	"strings"

	"notesapi/utils"
)

type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Pass        string
	From        string
	To          string
	FromName    string
	BaseURL     string
	TokenSecret string
}

var requiredSMTPEnv = []string{
	"SMTP_HOST",
	"SMTP_PORT",
	"SMTP_USER",
	"SMTP_PASS",
	"SMTP_FROM",
	"SMTP_TO",
}

// LoadSMTPConfig fails when any transport variable is unset, naming every missing key.
func LoadSMTPConfig() (SMTPConfig, error) {
	if missing := utils.MissingEnv(requiredSMTPEnv...); len(missing) > 0 {
		return SMTPConfig{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	rawPort := utils.GetEnvAsString("SMTP_PORT", "")
	port, err := strconv.Atoi(strings.TrimSpace(rawPort))
	if err != nil || port < 1 || port > 65535 {
		return SMTPConfig{}, fmt.Errorf("invalid SMTP_PORT %q", rawPort)
	}

	return SMTPConfig{
		Host:        utils.GetEnvAsString("SMTP_HOST", ""),
		Port:        port,
		User:        utils.GetEnvAsString("SMTP_USER", ""),
		Pass:        utils.GetEnvAsString("SMTP_PASS", ""),
		From:        utils.GetEnvAsString("SMTP_FROM", ""),
		To:          utils.GetEnvAsString("SMTP_TO", ""),
		FromName:    utils.GetEnvAsString("SMTP_FROM_NAME", "Notes API"),
		BaseURL:     strings.TrimRight(utils.GetEnvAsString("APP_BASE_URL", "http://localhost:3000"), "/"),
		TokenSecret: utils.GetEnvAsString("TOKEN_SECRET", ""),
	}, nil
}
