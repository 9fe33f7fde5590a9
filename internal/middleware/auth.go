package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"berrystore/internal/modules/auth"
	"berrystore/internal/pkg/response"
)

// RequireAuth rejects requests the authenticator cannot resolve to an
// identity. On success user_id and role are stored in the gin context.
// Upstream verifier failures are logged but the client only ever sees a
// plain 401.
func RequireAuth(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authenticator.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			if errors.Is(err, auth.ErrVerifierUnavailable) {
				log.Printf("auth_upstream_error path=%s error=%q", c.Request.URL.Path, err)
			}
			response.AbortError(c, http.StatusUnauthorized, "Not authorized")
			return
		}

		c.Set("user_id", identity.UserID)
		c.Set("role", identity.Role)

		c.Next()
	}
}
