package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const TokenDataKey = "auth.token_data"

var ErrNoToken = errors.New("no bearer token present")

// TokenData is the identity extracted from a bearer access token after the
// auth middleware has validated it against the identity provider.
type TokenData struct {
	Sub      string
	Email    string
	RawToken string
}

// BearerToken pulls the raw access token out of the Authorization header.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(raw), nil
}

// ParseTokenDataCtx returns the identity the auth middleware attached to the
// request. Routes behind the middleware can rely on it being present.
func ParseTokenDataCtx(c echo.Context) (*TokenData, error) {
	data, ok := c.Get(TokenDataKey).(*TokenData)
	if !ok || data == nil {
		return nil, ErrNoToken
	}
	return data, nil
}

// TokenExpiry decodes the token claims without verifying the signature and
// returns the expiry time. Signature validation is the identity provider's
// job; the expiry only bounds how long a validated token may be cached.
func TokenExpiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}
