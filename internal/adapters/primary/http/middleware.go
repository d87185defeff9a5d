package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

const ctxUserIDKey = "userID"

// AuthMiddleware valide le Bearer token et dépose l'identifiant utilisateur
// dans le contexte gin. Un token absent n'est pas une erreur : les routes de
// lecture acceptent les visiteurs anonymes, c'est le service qui décide si
// l'authentification est requise.
func AuthMiddleware(verifier ports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		userID, err := verifier.Validate(token)
		if err != nil {
			// Token présent mais invalide : on rejette immédiatement plutôt
			// que de dégrader silencieusement en anonyme.
			slog.Warn("🔒 Invalid access token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

// RequireAuth coupe court pour les routes où l'anonyme n'a pas sa place.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CurrentUserID renvoie l'utilisateur authentifié, "" pour un anonyme.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
