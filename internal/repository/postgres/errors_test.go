package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/salon-server/internal/model"
)

func TestAppointmentWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "exclusion", err: &pgconn.PgError{Code: codeExclusionViolation, ConstraintName: "appointments_staff_no_overlap"}, want: model.ErrSlotTaken},
		{name: "unique", err: &pgconn.PgError{Code: codeUniqueViolation}, want: model.ErrSlotTaken},
		{name: "foreign key", err: &pgconn.PgError{Code: codeForeignKeyViolation}, want: model.ErrNotFound},
		{name: "wrapped exclusion", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeExclusionViolation}), want: model.ErrSlotTaken},
		{name: "no rows", err: pgx.ErrNoRows, want: model.ErrNotFound},
		{name: "other", err: assert.AnError, want: assert.AnError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, appointmentWriteError("create appointment", tt.err), tt.want)
		})
	}
}

func TestCatalogWriteError(t *testing.T) {
	assert.ErrorIs(t, catalogWriteError("create", &pgconn.PgError{Code: codeUniqueViolation}), model.ErrAlreadyExists)
	assert.ErrorIs(t, catalogWriteError("create", &pgconn.PgError{Code: codeForeignKeyViolation}), model.ErrNotFound)
	assert.ErrorIs(t, catalogWriteError("rename", pgx.ErrNoRows), model.ErrNotFound)
	assert.ErrorIs(t, catalogWriteError("rename", assert.AnError), assert.AnError)
}

func TestListAppointmentsQuery(t *testing.T) {
	query, args := listAppointmentsQuery(model.AppointmentFilter{})
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	query, args = listAppointmentsQuery(model.AppointmentFilter{Date: &date, Status: model.StatusPending})
	assert.Contains(t, query, "WHERE date = $1 AND status = $2")
	assert.Equal(t, []any{date, "PENDING"}, args)
}
