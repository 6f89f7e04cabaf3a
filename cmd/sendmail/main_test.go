package main

import (
	"strings"
	"testing"
	"time"

	"notesapi/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linkConfig = config.SMTPConfig{
	BaseURL:     "https://notes.example.com",
	TokenSecret: "correct horse battery staple",
}

func TestBuildAndCheckVerificationLink(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	url, err := buildLink(kindVerification, linkConfig, "ada@example.com", now)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://notes.example.com/verifyemail/"))

	code := strings.TrimPrefix(url, "https://notes.example.com/verifyemail/")
	assert.NoError(t, checkLink(kindVerification, linkConfig.TokenSecret, "ada@example.com", code, now.Add(time.Minute)))
	assert.Error(t, checkLink(kindVerification, linkConfig.TokenSecret, "ada@example.com", code, now.Add(time.Hour)))
}

func TestBuildAndCheckResetLink(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	url, err := buildLink(kindReset, linkConfig, "ada@example.com", now)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://notes.example.com/resetpassword/"))

	token := strings.TrimPrefix(url, "https://notes.example.com/resetpassword/")
	assert.NoError(t, checkLink(kindReset, linkConfig.TokenSecret, "ada@example.com", token, now.Add(5*time.Minute)))
	assert.Error(t, checkLink(kindReset, linkConfig.TokenSecret, "grace@example.com", token, now))
	assert.Error(t, checkLink(kindReset, linkConfig.TokenSecret, "ada@example.com", token, now.Add(11*time.Minute)))
}

func TestUnknownKind(t *testing.T) {
	_, err := buildLink("welcome", linkConfig, "ada@example.com", time.Now())
	assert.Error(t, err)
	assert.Error(t, checkLink("welcome", linkConfig.TokenSecret, "ada@example.com", "x", time.Now()))
}
