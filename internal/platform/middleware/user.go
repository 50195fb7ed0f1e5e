package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit/service-shareit/internal/platform/response"
)

// UserIDHeader carries the trusted numeric id of the calling user.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "user_id"

// UserIDMiddleware rejects requests without a valid caller id header.
func UserIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			response.BadRequest(c, "missing "+UserIDHeader+" header")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(c, "invalid "+UserIDHeader+" header")
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// GetUserID returns the caller id set by UserIDMiddleware.
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
