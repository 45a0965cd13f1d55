package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RequiredTables are the tables the service reads and writes. The schema
// itself is provisioned outside this service.
var RequiredTables = []string{"users", "items", "blogs"}

type TablesRepositoryImpl struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) *TablesRepositoryImpl {
	return &TablesRepositoryImpl{db: db}
}

// MissingTables lists the required tables absent from the current schema.
func (r *TablesRepositoryImpl) MissingTables(ctx context.Context) ([]string, error) {
	schema := "DATABASE()"
	if isPostgres(r.db) {
		schema = "current_schema()"
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = %s AND table_name IN (?)`, schema), RequiredTables)
	if err != nil {
		return nil, fmt.Errorf("failed to build tables query: %w", err)
	}

	var present []string
	if err := r.db.SelectContext(ctx, &present, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list database tables: %w", err)
	}

	found := make(map[string]bool, len(present))
	for _, name := range present {
		found[name] = true
	}

	var missing []string
	for _, name := range RequiredTables {
		if !found[name] {
			missing = append(missing, name)
		}
	}

	return missing, nil
}
