package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/salon-server/internal/api/apierror"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// AbortWithError maps err to its HTTP status and aborts the chain. The
// original error is attached to the context for the logging middleware.
func AbortWithError(c *gin.Context, err error) {
	apiErr := apierror.FromError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus, ErrorBody{Error: apiErr.Message, Reason: apiErr.Reason})
}
