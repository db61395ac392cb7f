package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SpanName renames the request span after the matched route so spans of one
// endpoint group together regardless of path parameters.
func SpanName() gin.HandlerFunc {
	return func(c *gin.Context) {
		if route := c.FullPath(); route != "" {
			trace.SpanFromContext(c.Request.Context()).SetName(c.Request.Method + " " + route)
		}
		c.Next()
	}
}
