// Package apierror translates domain errors into transport errors shared by
// the gRPC and REST surfaces.
package apierror

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/salon-server/internal/model"
)

// Domain is reported in google.rpc.ErrorInfo details.
const Domain = "salon.v1"

// Machine readable reasons.
const (
	ReasonNotFound             = "NOT_FOUND"
	ReasonInvalidFormat        = "INVALID_FORMAT"
	ReasonCrossesMidnight      = "CROSSES_MIDNIGHT"
	ReasonInvalidArgument      = "INVALID_ARGUMENT"
	ReasonCustomerDoubleBooked = "CUSTOMER_DOUBLE_BOOKED"
	ReasonStaffUnavailable     = "STAFF_UNAVAILABLE"
	ReasonSlotTaken            = "SLOT_TAKEN"
	ReasonServiceInactive      = "SERVICE_INACTIVE"
	ReasonInvalidTransition    = "INVALID_TRANSITION"
	ReasonForbidden            = "FORBIDDEN"
	ReasonInUse                = "IN_USE"
	ReasonAlreadyExists        = "ALREADY_EXISTS"
	ReasonUnauthenticated      = "UNAUTHENTICATED"
	ReasonUserInactive         = "USER_INACTIVE"
	ReasonRateLimited          = "RATE_LIMITED"
	ReasonTimeout              = "TIMEOUT"
	ReasonCanceled             = "CANCELED"
	ReasonInternal             = "INTERNAL"
)

// APIError is an error as seen by API clients.
type APIError struct {
	GRPCCode   codes.Code
	HTTPStatus int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// GRPCStatus lets grpc-go and status.FromError convert the error directly.
func (e *APIError) GRPCStatus() *status.Status {
	st := status.New(e.GRPCCode, e.Message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: e.Reason, Domain: Domain})
	if err != nil {
		return st
	}
	return detailed
}

type mapping struct {
	target error
	code   codes.Code
	http   int
	reason string
}

// Order matters: the first sentinel found in the chain wins.
var mappings = []mapping{
	{model.ErrSlotTaken, codes.Aborted, http.StatusConflict, ReasonSlotTaken},
	{model.ErrCustomerDoubleBooked, codes.FailedPrecondition, http.StatusConflict, ReasonCustomerDoubleBooked},
	{model.ErrStaffUnavailable, codes.FailedPrecondition, http.StatusConflict, ReasonStaffUnavailable},
	{model.ErrServiceInactive, codes.FailedPrecondition, http.StatusUnprocessableEntity, ReasonServiceInactive},
	{model.ErrInvalidTransition, codes.FailedPrecondition, http.StatusConflict, ReasonInvalidTransition},
	{model.ErrInUse, codes.FailedPrecondition, http.StatusConflict, ReasonInUse},
	{model.ErrAlreadyExists, codes.AlreadyExists, http.StatusConflict, ReasonAlreadyExists},
	{model.ErrCrossesMidnight, codes.InvalidArgument, http.StatusBadRequest, ReasonCrossesMidnight},
	{model.ErrInvalidFormat, codes.InvalidArgument, http.StatusBadRequest, ReasonInvalidFormat},
	{model.ErrInvalidArgument, codes.InvalidArgument, http.StatusBadRequest, ReasonInvalidArgument},
	{model.ErrForbidden, codes.PermissionDenied, http.StatusForbidden, ReasonForbidden},
	{model.ErrUserInactive, codes.PermissionDenied, http.StatusForbidden, ReasonUserInactive},
	{model.ErrUnauthenticated, codes.Unauthenticated, http.StatusUnauthorized, ReasonUnauthenticated},
	{model.ErrNotFound, codes.NotFound, http.StatusNotFound, ReasonNotFound},
	{context.DeadlineExceeded, codes.DeadlineExceeded, http.StatusGatewayTimeout, ReasonTimeout},
	{context.Canceled, codes.Canceled, http.StatusRequestTimeout, ReasonCanceled},
}

// FromError resolves err to an APIError. Errors that match no known kind
// become Internal with a generic message so internals are never echoed.
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return &APIError{GRPCCode: m.code, HTTPStatus: m.http, Reason: m.reason, Message: err.Error()}
		}
	}

	return Internal()
}

// IsInternal reports whether err resolves to an Internal APIError.
func IsInternal(err error) bool {
	return FromError(err).Reason == ReasonInternal
}

// Internal returns the generic internal error.
func Internal() *APIError {
	return &APIError{
		GRPCCode:   codes.Internal,
		HTTPStatus: http.StatusInternalServerError,
		Reason:     ReasonInternal,
		Message:    "internal server error",
	}
}

// RateLimited is returned when a caller exceeds its request budget.
func RateLimited() *APIError {
	return &APIError{
		GRPCCode:   codes.ResourceExhausted,
		HTTPStatus: http.StatusTooManyRequests,
		Reason:     ReasonRateLimited,
		Message:    "rate limit exceeded",
	}
}

// MissingToken is returned when a protected call carries no bearer token.
func MissingToken() *APIError {
	return &APIError{
		GRPCCode:   codes.Unauthenticated,
		HTTPStatus: http.StatusUnauthorized,
		Reason:     ReasonUnauthenticated,
		Message:    "missing authorization token",
	}
}

// InvalidArgument wraps a request validation failure.
func InvalidArgument(msg string) *APIError {
	return &APIError{
		GRPCCode:   codes.InvalidArgument,
		HTTPStatus: http.StatusBadRequest,
		Reason:     ReasonInvalidArgument,
		Message:    msg,
	}
}
