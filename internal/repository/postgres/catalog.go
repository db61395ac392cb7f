package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/salon-server/internal/model"
)

var (
	_ model.CategoryStore = (*CategoryRepository)(nil)
	_ model.ServiceStore  = (*ServiceRepository)(nil)
)

type CategoryRepository struct {
	db *Connection
}

func NewCategoryRepository(db *Connection) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING name, created_at`, name,
	).Scan(&c.Name, &c.CreatedAt)
	if err != nil {
		return model.Category{}, catalogWriteError("create category", err)
	}
	return c, nil
}

// Rename relies on ON UPDATE CASCADE to carry the new name over to services
// and staff specialties.
func (r *CategoryRepository) Rename(ctx context.Context, oldName, newName string) (model.Category, error) {
	var c model.Category
	err := r.db.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE name = $1 RETURNING name, created_at`, oldName, newName,
	).Scan(&c.Name, &c.CreatedAt)
	if err != nil {
		return model.Category{}, catalogWriteError("rename category", err)
	}
	return c, nil
}

// Delete removes a category that no live service or staff member uses.
// Soft-deleted services and staff keep their rows but lose the reference.
func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	return r.db.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT TRUE FROM categories WHERE name = $1 FOR UPDATE`, name).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock category: %w", err)
		}

		var used bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM services WHERE category = $1 AND deleted_at IS NULL)
			    OR EXISTS (SELECT 1 FROM users WHERE specialty_category = $1 AND deleted_at IS NULL)`, name,
		).Scan(&used)
		if err != nil {
			return fmt.Errorf("failed to check category references: %w", err)
		}
		if used {
			return fmt.Errorf("%w: category %q is referenced by services or staff", model.ErrInUse, name)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE services SET category = NULL WHERE category = $1 AND deleted_at IS NOT NULL`, name,
		); err != nil {
			return fmt.Errorf("failed to detach deleted services: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE users SET specialty_category = NULL WHERE specialty_category = $1 AND deleted_at IS NOT NULL`, name,
		); err != nil {
			return fmt.Errorf("failed to detach deleted staff: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE name = $1`, name); err != nil {
			if code, _ := pgCode(err); code == codeForeignKeyViolation {
				return fmt.Errorf("%w: category %q is referenced by services or staff", model.ErrInUse, name)
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

const serviceColumns = `id, name, description, category, duration_minutes, price, is_active, created_at, updated_at`

type ServiceRepository struct {
	db *Connection
}

func NewServiceRepository(db *Connection) *ServiceRepository {
	return &ServiceRepository{
		db: db,
	}
}

func scanService(row rowScanner) (model.Service, error) {
	var s model.Service
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Category, &s.Duration, &s.Price,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	s, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Service{}, model.ErrNotFound
		}
		return model.Service{}, fmt.Errorf("failed to get service: %w", err)
	}
	return s, nil
}

func (r *ServiceRepository) List(ctx context.Context, includeInactive bool) ([]model.Service, error) {
	query := `SELECT ` + serviceColumns + `
			  FROM services
			  WHERE deleted_at IS NULL AND ($1 OR is_active)
			  ORDER BY category, name`

	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}

	return services, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s model.Service) (model.Service, error) {
	query := `INSERT INTO services (id, name, description, category, duration_minutes, price, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + serviceColumns

	saved, err := scanService(r.db.QueryRow(ctx, query,
		s.ID, s.Name, s.Description, s.Category, s.Duration, s.Price, s.IsActive, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return model.Service{}, catalogWriteError("create service", err)
	}
	return saved, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s model.Service) (model.Service, error) {
	query := `UPDATE services
			  SET name = $2, description = $3, category = $4, duration_minutes = $5, price = $6, is_active = $7, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + serviceColumns

	saved, err := scanService(r.db.QueryRow(ctx, query,
		s.ID, s.Name, s.Description, s.Category, s.Duration, s.Price, s.IsActive,
	))
	if err != nil {
		return model.Service{}, catalogWriteError("update service", err)
	}
	return saved, nil
}

// Delete soft-deletes the service so that historic appointments keep their
// reference. Services still booked by PENDING or CONFIRMED appointments are
// refused with ErrInUse.
func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT TRUE FROM services WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
		).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock service: %w", err)
		}

		var booked bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE service_id = $1 AND status IN ('PENDING', 'CONFIRMED'))`, id,
		).Scan(&booked)
		if err != nil {
			return fmt.Errorf("failed to check service appointments: %w", err)
		}
		if booked {
			return fmt.Errorf("%w: service has upcoming appointments", model.ErrInUse)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE services SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW() WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("failed to delete service: %w", err)
		}
		return nil
	})
}
