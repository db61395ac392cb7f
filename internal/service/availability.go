package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

// Availability finds staff members who are qualified and free in a window.
type Availability struct {
	users        model.UserStore
	appointments model.AppointmentStore
	logger       *logger.Logger
}

func NewAvailability(users model.UserStore, appointments model.AppointmentStore, logger *logger.Logger) *Availability {
	return &Availability{users: users, appointments: appointments, logger: logger}
}

// FindAvailableStaff returns active staff specialised in category that have no
// non-terminal appointment overlapping [startTime, endTime) on date. The
// result is empty, not an error, when nobody qualifies.
func (a *Availability) FindAvailableStaff(ctx context.Context, category string, date time.Time, startTime, endTime string) ([]model.StaffSummary, error) {
	window, err := timewindow.NewWindow(startTime, endTime)
	if err != nil {
		return nil, err
	}

	candidates, err := a.users.FindActiveStaffByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff by category: %w", err)
	}

	available := make([]model.StaffSummary, 0, len(candidates))
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, staff := range candidates {
		if _, ok := seen[staff.ID]; ok {
			continue
		}
		seen[staff.ID] = struct{}{}

		booked, err := a.appointments.FindByStaffAndDate(ctx, staff.ID, date, model.TerminalStatuses)
		if err != nil {
			return nil, fmt.Errorf("failed to find staff appointments: %w", err)
		}
		busy, err := overlapsAny(window, booked, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if !busy {
			available = append(available, staff)
		}
	}

	a.logger.Debug("Availability service: staff lookup",
		"category", category,
		"date", timewindow.FormatDate(date),
		"candidates", len(candidates),
		"available", len(available))

	return available, nil
}

// overlapsAny reports whether window overlaps any of booked, ignoring the
// appointment with id exclude.
func overlapsAny(window timewindow.Window, booked []model.AppointmentWindow, exclude uuid.UUID) (bool, error) {
	for _, b := range booked {
		if exclude != uuid.Nil && b.ID == exclude {
			continue
		}
		other, err := timewindow.NewWindow(b.StartTime, b.EndTime)
		if err != nil {
			return false, fmt.Errorf("appointment %s has a malformed window: %w", b.ID, err)
		}
		if window.Overlaps(other) {
			return true, nil
		}
	}
	return false, nil
}
