package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/salon-server/internal/mocks"
	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/testutil"
)

func TestScheduleExport_Export(t *testing.T) {
	t.Parallel()

	alice := testutil.Customer("alice")
	anna := testutil.Staff("anna", "Manicure")
	day := testutil.Date("2025-06-02")
	kept := appointmentAt(alice.ID, &anna.ID, "2025-06-02", "10:00", "10:30", model.StatusConfirmed)
	dropped := appointmentAt(alice.ID, nil, "2025-06-02", "12:00", "12:30", model.StatusCancelled)

	appointments := &mocks.AppointmentStore{}
	storage := &mocks.Storage{}
	appointments.On("List", mock.Anything, model.AppointmentFilter{Date: &day}).Return([]model.Appointment{kept, dropped}, nil)

	var uploaded []byte
	storage.On("Upload", mock.Anything, "schedules/2025-06-02.json", mock.Anything, mock.AnythingOfType("int64"), "application/json").
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(2).(io.Reader))
		}).
		Return(nil).Once()

	export := NewScheduleExport(appointments, storage, testutil.MakeNoopLogger())
	export.now = func() time.Time { return fixedNow }

	key, err := export.Export(context.Background(), "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "schedules/2025-06-02.json", key)

	var doc Schedule
	require.NoError(t, json.Unmarshal(uploaded, &doc))
	assert.Equal(t, "2025-06-02", doc.Date)
	require.Len(t, doc.Appointments, 1)
	assert.Equal(t, kept.ID, doc.Appointments[0].ID)
	assert.Equal(t, model.StatusConfirmed, doc.Appointments[0].Status)
}

func TestScheduleExport_Fetch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storage := &mocks.Storage{}
	storage.On("Exists", mock.Anything, "schedules/2025-06-02.json").Return(true, nil)
	storage.On("Exists", mock.Anything, "schedules/2025-06-03.json").Return(false, nil)
	storage.On("Download", mock.Anything, "schedules/2025-06-02.json").
		Return(io.NopCloser(bytes.NewBufferString(`{"date":"2025-06-02"}`)), nil)

	export := NewScheduleExport(&mocks.AppointmentStore{}, storage, testutil.MakeNoopLogger())

	rc, err := export.Fetch(ctx, "2025-06-02")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-06-02"}`, string(body))
	require.NoError(t, rc.Close())

	_, err = export.Fetch(ctx, "2025-06-03")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = export.Fetch(ctx, "yesterday")
	assert.ErrorIs(t, err, model.ErrInvalidFormat)
}
