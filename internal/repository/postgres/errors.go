package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/salon-server/internal/model"
)

const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeExclusionViolation  = "23P01"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// appointmentWriteError translates constraint violations raised while
// writing an appointment.
func appointmentWriteError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	code, constraint := pgCode(err)
	switch code {
	case codeExclusionViolation, codeUniqueViolation:
		return fmt.Errorf("%w: %s", model.ErrSlotTaken, constraint)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", model.ErrNotFound, constraint)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// catalogWriteError translates constraint violations raised while writing
// users, categories or services.
func catalogWriteError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	code, constraint := pgCode(err)
	switch code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", model.ErrAlreadyExists, constraint)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: unknown category", model.ErrNotFound)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
