package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	mysqlDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
)

func isPostgres(db *sqlx.DB) bool {
	return sqlx.BindType(db.DriverName()) == sqlx.DOLLAR
}

// quoteIdent quotes a column name that collides with a reserved word.
func quoteIdent(db *sqlx.DB, name string) string {
	if isPostgres(db) {
		return `"` + name + `"`
	}
	return "`" + name + "`"
}

// insertReturningID runs a named INSERT and returns the generated id. MySQL
// reports it through LastInsertId, PostgreSQL needs RETURNING.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, arg interface{}) (int64, error) {
	if isPostgres(db) {
		bound, args, err := db.BindNamed(query+" RETURNING id", arg)
		if err != nil {
			return 0, fmt.Errorf("failed to bind insert: %w", err)
		}

		var id int64
		if err := db.QueryRowxContext(ctx, bound, args...).Scan(&id); err != nil {
			return 0, classify(err)
		}
		if id == 0 {
			return 0, ErrNoInsertID
		}
		return id, nil
	}

	result, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return 0, classify(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoInsertID, err)
	}
	if id == 0 {
		return 0, ErrNoInsertID
	}

	return id, nil
}

// execAffecting runs a statement and maps zero affected rows to ErrNotFound.
func execAffecting(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return classify(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// classify maps driver unique violations onto ErrDuplicate, keeping the
// driver error in the chain.
func classify(err error) error {
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == postgresUniqueViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == postgresUniqueViolation
	}

	return false
}
