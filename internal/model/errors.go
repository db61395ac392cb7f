package model

import "errors"

var (
	// ErrNotFound is returned when a referenced appointment, service, category or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat is returned for clock or date strings that cannot be parsed.
	ErrInvalidFormat = errors.New("invalid time format")
	// ErrCrossesMidnight is returned when a window would end on the next day.
	ErrCrossesMidnight = errors.New("appointment crosses midnight")

	ErrCustomerDoubleBooked = errors.New("customer already has an appointment in this window")
	ErrStaffUnavailable     = errors.New("staff member is not available in this window")
	// ErrSlotTaken is returned when a concurrent booking claimed the window first.
	// Callers may retry once after a fresh availability check.
	ErrSlotTaken       = errors.New("time slot was taken by a concurrent booking")
	ErrServiceInactive = errors.New("service is not active")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")

	ErrInUse           = errors.New("record is still referenced")
	ErrAlreadyExists   = errors.New("record already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUserInactive    = errors.New("user account is inactive")
)
