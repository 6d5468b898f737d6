package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/auth"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
)

// Auth rejects requests without a valid Bearer access token. Claims are
// stashed in the gin context for downstream handlers.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c)
			return
		}

		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// every validation failure collapses to a plain 401
			reject(c)
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func reject(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.Abort()
	response.Error(c, errors.ErrUnauthorized)
}
