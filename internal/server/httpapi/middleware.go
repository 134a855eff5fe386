package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/server/auth"
)

// identityKey is the gin context key under which the authenticated user id
// is stored. It is only ever set after the token is verified AND the user
// is confirmed to still exist.
const identityKey = "UserID"

// authenticate attaches the caller's identity to the request context when a
// valid bearer token is presented. A missing header is not an error here:
// the request simply proceeds without identity and is rejected later by
// requireIdentity. A present-but-invalid token fails immediately, because a
// caller who sent credentials should learn they were bad.
//
// A syntactically valid token whose subject no longer exists also proceeds
// without identity: deleting the account invalidates outstanding tokens
// even though they carry a genuine signature.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			newErrorResponse(c, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		userID, err := auth.GetUserIDFromToken(parts[1], s.secretKey, time.Now())
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := s.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				c.Next()
				return
			}
			newErrorResponse(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Set(identityKey, user.ID)
		c.Next()
	}
}

// requireIdentity rejects requests that reached a protected route without
// an authenticated identity attached.
func (s *Server) requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(identityKey); !ok {
			newErrorResponse(c, http.StatusUnauthorized, "authentication required")
			return
		}
		c.Next()
	}
}

// currentUserID returns the authenticated user id attached by authenticate.
// Routes behind requireIdentity can assume it is present.
func currentUserID(c *gin.Context) string {
	id, _ := c.Get(identityKey)
	s, _ := id.(string)
	return s
}
