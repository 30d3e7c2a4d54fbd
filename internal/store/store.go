package store

import (
	"errors"
	"fmt"

	"buglog/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store groups the repositories that run on one database handle, normally a
// connection checked out of the pool for the current request.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// dbError tags err as a database failure. Postgres errors keep their SQLSTATE
// in the message.
func dbError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s: sqlstate %s: %w", domain.ErrDB, op, pgErr.Code, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrDB, op, err)
}
