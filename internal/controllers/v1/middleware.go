package v1

import (
	"strings"
	"time"

	"github.com/fintrack-app/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// contextUser is the key the authenticated user is stored under in the gin
// context.
const contextUser = "fintrack-user"

// tokenClaims is the JWT payload. The user ID is carried in the "id" claim.
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// issueToken returns a signed JWT for the user.
func issueToken(user models.User, now time.Time) (string, error) {
	claims := tokenClaims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenLifetime)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

// RequireAuth aborts requests that do not carry a valid bearer token and
// stores the authenticated user in the context for the handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(status(errNoToken), httpError{Error: errNoToken.Error()})
			return
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errNotAuthorized
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(status(errNotAuthorized), httpError{Error: errNotAuthorized.Error()})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(status(errNotAuthorized), httpError{Error: errNotAuthorized.Error()})
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", userID).Error
		if err != nil {
			c.AbortWithStatusJSON(status(errNotAuthorized), httpError{Error: errNotAuthorized.Error()})
			return
		}

		c.Set(contextUser, user)
	}
}

// currentUser returns the user stored in the context by RequireAuth.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}
