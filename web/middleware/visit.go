package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// VisitRecorder counts page requests for the daily stats job.
type VisitRecorder interface {
	Record()
}

// VisitCounterMiddleware records each page view, skipping static assets and
// uploaded images.
func VisitCounterMiddleware(recorder VisitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, "/assets/") && !strings.HasPrefix(path, "/uploads/") {
			recorder.Record()
		}
		c.Next()
	}
}
