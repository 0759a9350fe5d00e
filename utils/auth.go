// utils/auth.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	ContextUserID  = "userId"
	ContextOwnerID = "ownerId"
)

var ErrMissingSecret = errors.New("JWT_SECRET not set")

// Generate JWT secret key (run once initially)
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

type TokenConfig struct {
	Secret string
	Expiry time.Duration
}

// GenerateToken signs an HS256 token for the user and the owner account
// whose data they work on.
func GenerateToken(cfg TokenConfig, userID, ownerID uuid.UUID) (string, error) {
	if cfg.Secret == "" {
		return "", ErrMissingSecret
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = 24 * time.Hour
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID.String(),
		"ownerId": ownerID.String(),
		"exp":     now.Add(cfg.Expiry).Unix(),
		"iat":     now.Unix(),
	})
	return token.SignedString([]byte(cfg.Secret))
}

// Auth middleware
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		userID, err1 := uuid.Parse(claimString(claims, "sub"))
		ownerID, err2 := uuid.Parse(claimString(claims, "ownerId"))
		if err1 != nil || err2 != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextOwnerID, ownerID)
		c.Next()
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// OwnerID reads the owner set by AuthMiddleware and answers 401 when it is
// missing.
func OwnerID(c *gin.Context) (uuid.UUID, bool) {
	return contextID(c, ContextOwnerID, "Owner ID not found in context")
}

func UserID(c *gin.Context) (uuid.UUID, bool) {
	return contextID(c, ContextUserID, "User ID not found in context")
}

func contextID(c *gin.Context, key, message string) (uuid.UUID, bool) {
	v, exists := c.Get(key)
	id, ok := v.(uuid.UUID)
	if !exists || !ok || id == uuid.Nil {
		RespondWithError(c, http.StatusUnauthorized, message)
		return uuid.Nil, false
	}
	return id, true
}
