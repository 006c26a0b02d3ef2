package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"fabhomes/internal/models"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlForeignKey     = 1452
)

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// isForeignKeyConstraintError checks if the error corresponds to a MySQL/MariaDB
// foreign key constraint failure.
func isForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlForeignKey
}

// translateError maps driver failures onto the model sentinels the services
// switch on; anything else is wrapped with the operation name.
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case isDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, models.ErrConflict)
	case isForeignKeyConstraintError(err):
		return fmt.Errorf("%s: %w", op, models.ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}
