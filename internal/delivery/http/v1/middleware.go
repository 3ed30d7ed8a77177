package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/cludy/internal/owner"
)

const ownerCtxKey = "owner"

// HandleOptionalAuthMiddleware resolves the caller's identity. A missing
// Authorization header yields the anonymous owner; a present but invalid
// token is rejected rather than silently downgraded to anonymous.
func (h *handlerImpl) HandleOptionalAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Set(ownerCtxKey, owner.Anonymous())
		return
	}

	o, ok := h.ownerFromHeader(c, header)
	if !ok {
		return
	}
	c.Set(ownerCtxKey, o)
}

// HandleRequireAuthMiddleware is HandleOptionalAuthMiddleware minus the
// anonymous path: the request must carry a valid token.
func (h *handlerImpl) HandleRequireAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return
	}

	o, ok := h.ownerFromHeader(c, header)
	if !ok {
		return
	}
	c.Set(ownerCtxKey, o)
}

func (h *handlerImpl) ownerFromHeader(c *gin.Context, header string) (owner.Owner, bool) {
	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return owner.Owner{}, false
	}

	userID, err := h.auth.ParseToken(parts[1])
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to parse token")
		abort(c, newUnauthorizedError(http.StatusText(http.StatusUnauthorized)))
		return owner.Owner{}, false
	}

	return owner.Identified(userID), true
}

// callerOwner returns the owner resolved by the auth middleware, defaulting
// to anonymous when no middleware ran.
func callerOwner(c *gin.Context) owner.Owner {
	value, exists := c.Get(ownerCtxKey)
	if !exists {
		return owner.Anonymous()
	}
	o, _ := value.(owner.Owner)
	return o
}
