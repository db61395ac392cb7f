package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/salon-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, name, email, phone, role, COALESCE(specialty_category, ''), is_active, created_at, updated_at, deleted_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row rowScanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role, &user.SpecialtyCategory,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	return user, err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, phone, role, specialty_category, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, string(user.Role), user.SpecialtyCategory,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, catalogWriteError("create user", err)
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users
			  SET name = $2, phone = $3, specialty_category = NULLIF($4, ''), is_active = $5, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Phone, user.SpecialtyCategory, user.IsActive,
	))
	if err != nil {
		return model.User{}, catalogWriteError("update user", err)
	}

	return saved, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	query := `UPDATE users SET is_active = $2, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to set user active flag: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role model.Role, specialty string) ([]model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = $1 AND deleted_at IS NULL AND ($2 = '' OR specialty_category = $2)
			  ORDER BY name`

	rows, err := r.db.Query(ctx, query, string(role), specialty)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) FindActiveStaffByCategory(ctx context.Context, category string) ([]model.StaffSummary, error) {
	const query = `
		SELECT id, name, email, specialty_category
		FROM users
		WHERE role = 'STAFF' AND is_active AND deleted_at IS NULL AND specialty_category = $1
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to find staff by category: %w", err)
	}
	defer rows.Close()

	var staff []model.StaffSummary
	for rows.Next() {
		var s model.StaffSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.SpecialtyCategory); err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read staff: %w", err)
	}

	return staff, nil
}

// DeleteStaff soft-deletes a staff member once no PENDING or CONFIRMED
// appointment is assigned to them.
func (r *UserRepository) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return r.db.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT TRUE FROM users WHERE id = $1 AND role = 'STAFF' AND deleted_at IS NULL FOR UPDATE`, id,
		).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock staff member: %w", err)
		}

		var busy bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE staff_id = $1 AND status IN ('PENDING', 'CONFIRMED'))`, id,
		).Scan(&busy)
		if err != nil {
			return fmt.Errorf("failed to check staff appointments: %w", err)
		}
		if busy {
			return fmt.Errorf("%w: staff member has upcoming appointments", model.ErrInUse)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW() WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("failed to delete staff member: %w", err)
		}
		return nil
	})
}
