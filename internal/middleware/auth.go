package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/braids-scheduler/internal/config"
)

const (
	ContextSubject = "subject"

	AdminSubject = "admin"
	TokenTTL     = 24 * time.Hour
)

// SessionFlag is the persisted "someone is logged in" switch.
type SessionFlag interface {
	Authenticated() bool
}

// AuthMiddleware lets a request through only while the flag is set and the
// bearer token is a valid admin token.
func AuthMiddleware(cfg *config.Config, flag SessionFlag) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !flag.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "not_authenticated"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_authorization_header"})
			return
		}

		subject, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil || subject != AdminSubject {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token"})
			return
		}

		c.Set(ContextSubject, subject)
		c.Next()
	}
}

func IssueToken(secret string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": AdminSubject,
		"exp": now.Add(TokenTTL).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry and returns the subject.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	return token.Claims.GetSubject()
}
