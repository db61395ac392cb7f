package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

func appendAppointmentEvent(ctx context.Context, uow model.UnitOfWork, eventType model.EventType, appt model.Appointment, actor uuid.UUID, at time.Time) error {
	payload, err := json.Marshal(model.AppointmentEvent{
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		StaffID:       appt.StaffID,
		ServiceID:     appt.ServiceID,
		Date:          timewindow.FormatDate(appt.Date),
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		Status:        appt.Status,
		ActorID:       actor,
		OccurredAt:    at.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	err = uow.Events().Append(ctx, model.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: appt.ID,
		Type:        eventType,
		Payload:     payload,
		CreatedAt:   at,
	})
	if err != nil {
		return fmt.Errorf("failed to append %s event: %w", eventType, err)
	}
	return nil
}
