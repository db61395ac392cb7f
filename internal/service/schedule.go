package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/dtroode/salon-server/internal/logger"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

const scheduleContentType = "application/json"

// ScheduleExport writes a day's appointments to object storage.
type ScheduleExport struct {
	appointments model.AppointmentStore
	storage      model.Storage
	logger       *logger.Logger
	now          func() time.Time
}

func NewScheduleExport(appointments model.AppointmentStore, storage model.Storage, logger *logger.Logger) *ScheduleExport {
	return &ScheduleExport{appointments: appointments, storage: storage, logger: logger, now: time.Now}
}

// Schedule is the exported document.
type Schedule struct {
	Date         string          `json:"date"`
	GeneratedAt  time.Time       `json:"generatedAt"`
	Appointments []ScheduleEntry `json:"appointments"`
}

type ScheduleEntry struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	StaffID   *uuid.UUID   `json:"staffId,omitempty"`
	ServiceID uuid.UUID    `json:"serviceId"`
	StartTime string       `json:"startTime"`
	EndTime   string       `json:"endTime"`
	Status    model.Status `json:"status"`
}

// ScheduleKey is the object key of the schedule for date.
func ScheduleKey(date time.Time) string {
	return "schedules/" + timewindow.FormatDate(date) + ".json"
}

// Export stores the non-cancelled appointments of date and returns the key.
func (s *ScheduleExport) Export(ctx context.Context, date string) (string, error) {
	day, err := timewindow.ParseDate(date)
	if err != nil {
		return "", err
	}

	list, err := s.appointments.List(ctx, model.AppointmentFilter{Date: &day})
	if err != nil {
		return "", fmt.Errorf("failed to list appointments: %w", err)
	}

	doc := Schedule{
		Date:         timewindow.FormatDate(day),
		GeneratedAt:  s.now().UTC(),
		Appointments: make([]ScheduleEntry, 0, len(list)),
	}
	for _, a := range list {
		if a.Status == model.StatusCancelled {
			continue
		}
		doc.Appointments = append(doc.Appointments, ScheduleEntry{
			ID:        a.ID,
			UserID:    a.UserID,
			StaffID:   a.StaffID,
			ServiceID: a.ServiceID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Status:    a.Status,
		})
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode schedule: %w", err)
	}

	key := ScheduleKey(day)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), scheduleContentType); err != nil {
		return "", fmt.Errorf("failed to upload schedule: %w", err)
	}

	s.logger.Info("Schedule export: schedule stored", "key", key, "appointments", len(doc.Appointments))

	return key, nil
}

// Fetch returns the stored schedule of date. The caller closes the reader.
func (s *ScheduleExport) Fetch(ctx context.Context, date string) (io.ReadCloser, error) {
	day, err := timewindow.ParseDate(date)
	if err != nil {
		return nil, err
	}

	key := ScheduleKey(day)
	ok, err := s.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check schedule: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("schedule %s: %w", timewindow.FormatDate(day), model.ErrNotFound)
	}

	rc, err := s.storage.Download(ctx, key)
	if errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download schedule: %w", err)
	}
	return rc, nil
}
