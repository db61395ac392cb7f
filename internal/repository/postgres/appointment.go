package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/salon-server/internal/model"
	"github.com/dtroode/salon-server/internal/timewindow"
)

var _ model.AppointmentStore = (*AppointmentRepository)(nil)

const appointmentColumns = `id, user_id, staff_id, service_id, date, start_min, end_min, status, notes, created_at, updated_at`

// AppointmentRepository stores appointments with their windows as minutes
// since midnight so that overlap constraints can be enforced in SQL.
type AppointmentRepository struct {
	db querier
}

func NewAppointmentRepository(db *Connection) *AppointmentRepository {
	return &AppointmentRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var (
		a          model.Appointment
		start, end int
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.StaffID, &a.ServiceID, &a.Date,
		&start, &end, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	a.StartTime = timewindow.Clock(start).String()
	a.EndTime = timewindow.Clock(end).String()
	return a, nil
}

func minutes(start, end string) (int, int, error) {
	w, err := timewindow.NewWindow(start, end)
	if err != nil {
		return 0, 0, err
	}
	return int(w.Start), int(w.End), nil
}

func statusStrings(statuses []model.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

func (r *AppointmentRepository) FindByCustomerAndDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeStatuses []model.Status) ([]model.AppointmentWindow, error) {
	const query = `
		SELECT id, start_min, end_min
		FROM appointments
		WHERE user_id = $1 AND date = $2 AND NOT (status = ANY($3))
		ORDER BY start_min`

	return r.findWindows(ctx, query, userID, date, excludeStatuses)
}

func (r *AppointmentRepository) FindByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time, excludeStatuses []model.Status) ([]model.AppointmentWindow, error) {
	const query = `
		SELECT id, start_min, end_min
		FROM appointments
		WHERE staff_id = $1 AND date = $2 AND NOT (status = ANY($3))
		ORDER BY start_min`

	return r.findWindows(ctx, query, staffID, date, excludeStatuses)
}

func (r *AppointmentRepository) findWindows(ctx context.Context, query string, owner uuid.UUID, date time.Time, exclude []model.Status) ([]model.AppointmentWindow, error) {
	rows, err := r.db.Query(ctx, query, owner, timewindow.Day(date), statusStrings(exclude))
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment windows: %w", err)
	}
	defer rows.Close()

	var windows []model.AppointmentWindow
	for rows.Next() {
		var (
			w          model.AppointmentWindow
			start, end int
		)
		if err := rows.Scan(&w.ID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan appointment window: %w", err)
		}
		w.StartTime = timewindow.Clock(start).String()
		w.EndTime = timewindow.Clock(end).String()
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read appointment windows: %w", err)
	}

	return windows, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	start, end, err := minutes(a.StartTime, a.EndTime)
	if err != nil {
		return model.Appointment{}, err
	}

	query := `
		INSERT INTO appointments (id, user_id, staff_id, service_id, date, start_min, end_min, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + appointmentColumns

	saved, err := scanAppointment(r.db.QueryRow(ctx, query,
		a.ID, a.UserID, a.StaffID, a.ServiceID, timewindow.Day(a.Date),
		start, end, string(a.Status), a.Notes, a.CreatedAt, a.UpdatedAt,
	))
	if err != nil {
		return model.Appointment{}, appointmentWriteError("create appointment", err)
	}

	return saved, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (model.Appointment, error) {
	query := `
		UPDATE appointments SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + appointmentColumns

	saved, err := scanAppointment(r.db.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		return model.Appointment{}, appointmentWriteError("update appointment status", err)
	}

	return saved, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	start, end, err := minutes(a.StartTime, a.EndTime)
	if err != nil {
		return model.Appointment{}, err
	}

	query := `
		UPDATE appointments
		SET staff_id = $2, date = $3, start_min = $4, end_min = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + appointmentColumns

	saved, err := scanAppointment(r.db.QueryRow(ctx, query,
		a.ID, a.StaffID, timewindow.Day(a.Date), start, end, a.Notes,
	))
	if err != nil {
		return model.Appointment{}, appointmentWriteError("update appointment", err)
	}

	return saved, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	return r.get(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
}

func (r *AppointmentRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	return r.get(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id)
}

func (r *AppointmentRepository) get(ctx context.Context, query string, id uuid.UUID) (model.Appointment, error) {
	a, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Appointment{}, model.ErrNotFound
		}
		return model.Appointment{}, fmt.Errorf("failed to get appointment: %w", err)
	}
	return a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	query, args := listAppointmentsQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	list := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read appointments: %w", err)
	}

	return list, nil
}

func listAppointmentsQuery(filter model.AppointmentFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.UserID != nil {
		add("user_id = $%d", *filter.UserID)
	}
	if filter.StaffID != nil {
		add("staff_id = $%d", *filter.StaffID)
	}
	if filter.Date != nil {
		add("date = $%d", timewindow.Day(*filter.Date))
	}
	if filter.Status != "" {
		add("status = $%d", string(filter.Status))
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date DESC, start_min ASC`

	return query, args
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
