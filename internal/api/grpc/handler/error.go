package handler

import (
	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/logger"
)

// handleError converts err to a gRPC status error. Unknown errors are
// logged here and reach the client only as Internal.
func handleError(lg *logger.Logger, op string, err error) error {
	apiErr := apierror.FromError(err)
	if apiErr.Reason == apierror.ReasonInternal {
		lg.Error("Scheduling handler: "+op+" failed", "error", err.Error())
	} else {
		lg.Debug("Scheduling handler: "+op+" rejected", "reason", apiErr.Reason, "error", err.Error())
	}
	return apiErr
}
