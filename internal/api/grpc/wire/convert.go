package wire

import (
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

// FromAppointment converts a stored appointment to its wire view.
func FromAppointment(a model.Appointment) Appointment {
	out := Appointment{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		ServiceID: a.ServiceID.String(),
		Date:      timewindow.FormatDate(a.Date),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.StaffID != nil {
		out.StaffID = a.StaffID.String()
	}
	return out
}

// FromAppointments converts a list, never returning nil.
func FromAppointments(list []model.Appointment) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		out = append(out, FromAppointment(a))
	}
	return out
}

// FromStaff converts staff summaries, never returning nil.
func FromStaff(list []model.StaffSummary) []Staff {
	out := make([]Staff, 0, len(list))
	for _, s := range list {
		out = append(out, Staff{
			ID:                s.ID.String(),
			Name:              s.Name,
			Email:             s.Email,
			SpecialtyCategory: s.SpecialtyCategory,
		})
	}
	return out
}
