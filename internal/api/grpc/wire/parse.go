package wire

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/api/apierror"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

// ParseID parses a required id field.
func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apierror.InvalidArgument(fmt.Sprintf("invalid %s %q", field, value))
	}
	return id, nil
}

// ParseOptionalID returns nil for an empty value.
func ParseOptionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseStatus accepts a status name in any case.
func ParseStatus(value string) (model.Status, error) {
	st := model.Status(strings.ToUpper(strings.TrimSpace(value)))
	if !st.Valid() {
		return "", apierror.InvalidArgument(fmt.Sprintf("invalid status %q", value))
	}
	return st, nil
}

// Filter converts the request into a store filter.
func (r *ListAppointmentsRequest) Filter() (model.AppointmentFilter, error) {
	var filter model.AppointmentFilter

	var err error
	if filter.UserID, err = ParseOptionalID("userId", r.UserID); err != nil {
		return filter, err
	}
	if filter.StaffID, err = ParseOptionalID("staffId", r.StaffID); err != nil {
		return filter, err
	}
	if r.Date != "" {
		date, err := timewindow.ParseDate(r.Date)
		if err != nil {
			return filter, apierror.FromError(err)
		}
		filter.Date = &date
	}
	if r.Status != "" {
		if filter.Status, err = ParseStatus(r.Status); err != nil {
			return filter, err
		}
	}

	return filter, nil
}
