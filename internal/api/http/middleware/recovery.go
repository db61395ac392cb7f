package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
)

// Recovery turns handler panics into a 500 response.
func Recovery(lg *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		lg.ErrorContext(c.Request.Context(), "Recovery middleware: panic recovered",
			"route", c.FullPath(),
			"panic", recovered,
			"stack", string(debug.Stack()),
		)
		AbortWithError(c, apierror.Internal())
	})
}
