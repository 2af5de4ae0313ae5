package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIdKey = "request_id"

// RequestIdMiddleware attaches a unique id to each request so log lines can
// be correlated. An incoming X-Request-Id is honored, otherwise one is
// generated.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIdKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
