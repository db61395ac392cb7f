// Package handler implements the REST endpoints of the salon API.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/api/grpc/wire"
	"github.com/dtroode/salon-server/internal/api/http/middleware"
	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
)

// fail writes err as a JSON error. Unknown errors are logged here and reach
// the client only as 500.
func fail(c *gin.Context, lg *logger.Logger, op string, err error) {
	if apierror.IsInternal(err) {
		lg.ErrorContext(c.Request.Context(), "HTTP handler: "+op+" failed", "error", err.Error())
	}
	middleware.AbortWithError(c, err)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.AbortWithError(c, apierror.InvalidArgument("invalid request body: "+err.Error()))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := wire.ParseID(name, c.Param(name))
	if err != nil {
		middleware.AbortWithError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// requester returns the authenticated caller or aborts with 401.
func requester(c *gin.Context, cm model.ContextManager) (model.Requester, bool) {
	r, ok := cm.GetRequesterFromContext(c.Request.Context())
	if !ok {
		middleware.AbortWithError(c, apierror.MissingToken())
		return model.Requester{}, false
	}
	return r, true
}
