package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

var errInvalidToken = errors.New("invalid session token")

// tokens issues and checks the HS256 session tokens carried in the
// HTTP-only session cookie.
type tokens struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (t tokens) issue(id *domain.Identity, now time.Time) (string, time.Time, error) {
	expires := now.Add(t.ttl)
	claims := sessionClaims{
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (t tokens) parse(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

// CookieName returns the name of the session cookie for role.
func CookieName(role domain.Role) string {
	return "studyhub_" + string(role) + "_session"
}

func cookiePath(role domain.Role) string {
	return "/v1/" + string(role)
}

func (t tokens) cookie(role domain.Role, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName(role),
		Value:    value,
		Path:     cookiePath(role),
		Expires:  expires,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (t tokens) clearCookie(role domain.Role) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName(role),
		Value:    "",
		Path:     cookiePath(role),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
