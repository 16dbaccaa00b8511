package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/caffio-app/caffio-api/config"
)

// Subject kinds carried in session tokens
const (
	SubjectCustomer = "customer"
	SubjectAdmin    = "admin"
)

// defaultJWTSecret is used when JWT_SECRET is not configured (development only)
var defaultJWTSecret = []byte("caffio-dev-secret")

// Claims are the session claims issued by login/signup
type Claims struct {
	AccountID uint   `json:"account_id"`
	Kind      string `json:"kind"` // "customer" or "admin"
	jwt.RegisteredClaims
}

// AuthError represents an authentication/authorization failure
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func jwtSecret() []byte {
	if cfg := config.GetConfig(); cfg != nil && cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret)
	}
	return defaultJWTSecret
}

// HashPassword hashes the password using bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword checks the provided password against the stored hash
func CheckPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateToken issues a signed session token for the given account
func GenerateToken(accountID uint, kind string) (string, error) {
	claims := &Claims{
		AccountID: accountID,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a session token and returns its claims
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireAuth is a middleware that validates the bearer token and requires the
// subject kind to match. On success the account id is stored in the context
// under "account_id" together with "account_kind".
func RequireAuth(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TOKEN",
					"message": "Authorization header is missing",
				},
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Bearer token not found",
				},
			})
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		if claims.Kind != kind {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Token does not grant access to this resource",
				},
			})
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("account_kind", claims.Kind)
		c.Next()
	}
}

// GetAccountID extracts the authenticated account id from the Gin context
func GetAccountID(c *gin.Context) (uint, error) {
	accountID, exists := c.Get("account_id")
	if !exists {
		return 0, &AuthError{Code: "MISSING_ACCOUNT_ID", Message: "Account ID not found in context"}
	}

	id, ok := accountID.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_ACCOUNT_ID", Message: "Account ID is not a uint"}
	}

	return id, nil
}
