package services

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// ResetTokenTTL matches the validity promised in the reset email subject.
	ResetTokenTTL = 10 * time.Minute

	verificationPeriod = 600 // seconds
	tokenIssuer        = "notesapi"
	resetTokenType     = "reset"
)

var (
	ErrEmptySecret       = errors.New("token secret is empty")
	ErrInvalidResetToken = errors.New("invalid reset token")
)

var verificationOpts = totp.ValidateOpts{
	Period:    verificationPeriod,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type ResetClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// verificationSecret derives a per-address TOTP seed so codes differ between users.
func verificationSecret(secret, email string) string {
	seed := secret + ":" + strings.ToLower(strings.TrimSpace(email))
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(seed))
}

// GenerateVerificationCode returns the six digit code for email at now.
func GenerateVerificationCode(secret, email string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	code, err := totp.GenerateCodeCustom(verificationSecret(secret, email), now, verificationOpts)
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return code, nil
}

// ValidateVerificationCode accepts codes from the current or adjacent ten minute period.
// It is the receiving side of GenerateVerificationCode, used by `sendmail -verify`.
func ValidateVerificationCode(secret, email, code string, now time.Time) (bool, error) {
	if secret == "" {
		return false, ErrEmptySecret
	}
	return totp.ValidateCustom(code, verificationSecret(secret, email), now, verificationOpts)
}

// GenerateResetToken signs an HS256 token for email that expires ttl after now.
func GenerateResetToken(secret, email string, now time.Time, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	claims := ResetClaims{
		Type: resetTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing reset token: %w", err)
	}
	return signedToken, nil
}

// ParseResetToken verifies tokenString as of now and returns the email it was issued for.
// It is the receiving side of GenerateResetToken, used by `sendmail -verify`.
func ParseResetToken(secret, tokenString string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	claims := &ResetClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResetToken, err)
	}
	if claims.Type != resetTokenType || claims.Subject == "" {
		return "", ErrInvalidResetToken
	}
	return claims.Subject, nil
}
