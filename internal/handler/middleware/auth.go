package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront-checkout/internal/pkg/jwt"
	"storefront-checkout/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey        = "user_id"
	ctxUserSessionIDKey = "user_session_id"
	ctxStoreNumberKey   = "store_number"

	storeNumberHeader = "X-Store-Number"
	orderNumberHeader = "X-Order-Number"
)

type AuthMiddleware struct {
	tokens *jwt.Service
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUserSessionIDKey, claims.SessionID)
		c.Next()
	}
}

// RequireStore rejects requests that do not identify the store acting on the
// checkout. Store scoping is enforced on every operation.
func (m *AuthMiddleware) RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		store := strings.TrimSpace(c.GetHeader(storeNumberHeader))
		if store == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Store-Number header required",
			})
			c.Abort()
			return
		}

		c.Set(ctxStoreNumberKey, store)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetStoreNumber(c *gin.Context) (string, bool) {
	store, exists := c.Get(ctxStoreNumberKey)
	if !exists {
		return "", false
	}

	s, ok := store.(string)
	return s, ok
}

// GetRequestMeta assembles the caller context for the use case layer. It must
// run after RequireAuth and RequireStore.
func GetRequestMeta(c *gin.Context) (shared.RequestMeta, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return shared.RequestMeta{}, false
	}
	store, ok := GetStoreNumber(c)
	if !ok {
		return shared.RequestMeta{}, false
	}

	userSessionID, _ := c.Get(ctxUserSessionIDKey)
	sessionID, _ := userSessionID.(string)

	return shared.RequestMeta{
		OrderNumber:   strings.TrimSpace(c.GetHeader(orderNumberHeader)),
		UserID:        userID,
		UserSessionID: sessionID,
		StoreNumber:   store,
	}, true
}
