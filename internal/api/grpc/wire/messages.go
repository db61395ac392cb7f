package wire

import "time"

// Appointment is the wire view of an appointment.
type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StaffID   string    `json:"staffId,omitempty"`
	ServiceID string    `json:"serviceId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Staff is the public view of a staff member.
type Staff struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	SpecialtyCategory string `json:"specialtyCategory"`
}

// BookAppointmentRequest books a service for the caller. An empty StaffID
// means any available staff member.
type BookAppointmentRequest struct {
	ServiceID string `json:"serviceId"`
	StaffID   string `json:"staffId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Notes     string `json:"notes,omitempty"`
}

type ListAvailableStaffRequest struct {
	Category  string `json:"category"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ListAvailableStaffResponse struct {
	Staff []Staff `json:"staff"`
}

type TransitionAppointmentRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateAppointmentRequest edits an appointment. Nil fields are left unchanged.
type UpdateAppointmentRequest struct {
	ID        string  `json:"id"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type AssignStaffRequest struct {
	ID      string `json:"id"`
	StaffID string `json:"staffId"`
}

type GetAppointmentRequest struct {
	ID string `json:"id"`
}

// ListAppointmentsRequest filters are honored for ADMIN callers only.
type ListAppointmentsRequest struct {
	UserID  string `json:"userId,omitempty"`
	StaffID string `json:"staffId,omitempty"`
	Date    string `json:"date,omitempty"`
	Status  string `json:"status,omitempty"`
}

type ListAppointmentsResponse struct {
	Appointments []Appointment `json:"appointments"`
}

type AppointmentResponse struct {
	Appointment Appointment `json:"appointment"`
}
