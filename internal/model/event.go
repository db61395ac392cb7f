package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event published through the outbox.
type EventType string

const (
	EventAppointmentBooked        EventType = "appointment.booked"
	EventAppointmentConfirmed     EventType = "appointment.confirmed"
	EventAppointmentCancelled     EventType = "appointment.cancelled"
	EventAppointmentCompleted     EventType = "appointment.completed"
	EventAppointmentRescheduled   EventType = "appointment.rescheduled"
	EventAppointmentStaffAssigned EventType = "appointment.staff_assigned"
	EventAppointmentDeleted       EventType = "appointment.deleted"
)

// StatusEvent returns the event emitted when an appointment enters status.
func StatusEvent(status Status) EventType {
	switch status {
	case StatusConfirmed:
		return EventAppointmentConfirmed
	case StatusCancelled:
		return EventAppointmentCancelled
	case StatusCompleted:
		return EventAppointmentCompleted
	default:
		return EventAppointmentBooked
	}
}

// EventStore appends events to the transactional outbox.
type EventStore interface {
	Append(ctx context.Context, event OutboxEvent) error
}

// OutboxStore hands unpublished events to publish and marks them published
// once publish returns nil.
type OutboxStore interface {
	PublishPending(ctx context.Context, limit int, publish func(ctx context.Context, events []OutboxEvent) error) (int, error)
}

// OutboxEvent is a domain event waiting to be relayed to a broker.
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        EventType
	Payload     []byte
	// Traceparent is the W3C trace context of the request that produced the event.
	Traceparent string
	CreatedAt   time.Time
}

// AppointmentEvent is the payload of every appointment.* event.
type AppointmentEvent struct {
	AppointmentID uuid.UUID  `json:"appointmentId"`
	UserID        uuid.UUID  `json:"userId"`
	StaffID       *uuid.UUID `json:"staffId,omitempty"`
	ServiceID     uuid.UUID  `json:"serviceId"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	Status        Status     `json:"status"`
	ActorID       uuid.UUID  `json:"actorId"`
	OccurredAt    time.Time  `json:"occurredAt"`
}
