package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookieName = "jwt"
	authCookieAge  = 24 * 60 * 60
	actorIDKey     = "actorID"
)

// TokenProvider signs and verifies the session tokens carried in the auth
// cookie.
type TokenProvider struct {
	secret       []byte
	isProduction bool
}

func NewTokenProvider(secret string, isProduction bool) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), isProduction: isProduction}
}

func (t *TokenProvider) Generate(userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(authCookieAge * time.Second)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenProvider) UserID(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, fmt.Errorf("unexpected claims type")
	}
	return strconv.ParseInt(claims.Subject, 10, 64)
}

// Authenticate resolves the auth cookie into an actor id on the gin context.
// A missing or invalid cookie is not an error at this layer: the services
// treat actor id 0 as "not logged in" and reject accordingly.
func (t *TokenProvider) Authenticate(c *gin.Context) {
	cookie, err := c.Cookie(authCookieName)
	if err == nil && cookie != "" {
		if userID, err := t.UserID(cookie); err == nil {
			c.Set(actorIDKey, userID)
		}
	}
	c.Next()
}

func (t *TokenProvider) setAuthCookie(c *gin.Context, userID int64) error {
	token, err := t.Generate(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(authCookieName, token, authCookieAge, "/", "", true, true)
	return nil
}

func (t *TokenProvider) clearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", t.isProduction, true)
}

// actorID returns the authenticated user's id, or 0 when the request
// carried no valid session.
func actorID(c *gin.Context) int64 {
	if v, ok := c.Get(actorIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
