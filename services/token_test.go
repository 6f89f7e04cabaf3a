package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "correct horse battery staple"

func TestVerificationCode(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	code, err := GenerateVerificationCode(testSecret, "ada@example.com", now)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	valid, err := ValidateVerificationCode(testSecret, "ada@example.com", code, now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = ValidateVerificationCode(testSecret, "ada@example.com", code, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, valid, "code expires")

	other, err := GenerateVerificationCode(testSecret, "grace@example.com", now)
	require.NoError(t, err)
	valid, err = ValidateVerificationCode(testSecret, "grace@example.com", code, now)
	require.NoError(t, err)
	assert.Equal(t, code == other, valid)
}

func TestVerificationCodeNeedsSecret(t *testing.T) {
	_, err := GenerateVerificationCode("", "ada@example.com", time.Now())
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestResetToken(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	token, err := GenerateResetToken(testSecret, "ada@example.com", now, ResetTokenTTL)
	require.NoError(t, err)

	email, err := ParseResetToken(testSecret, token, now.Add(9*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	_, err = ParseResetToken(testSecret, token, now.Add(11*time.Minute))
	assert.ErrorIs(t, err, ErrInvalidResetToken, "expired")

	_, err = ParseResetToken("another secret", token, now)
	assert.ErrorIs(t, err, ErrInvalidResetToken, "wrong key")

	_, err = ParseResetToken(testSecret, token+"x", now)
	assert.ErrorIs(t, err, ErrInvalidResetToken, "tampered")
}
