package service

import (
	"context"
	"fmt"
	"strings"

	"gqlblog/internal/repository"
)

type TablesService interface {
	// Ping fails when any table the API depends on is missing.
	Ping(ctx context.Context) error
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) Ping(ctx context.Context) error {
	missing, err := t.tablesRepo.MissingTables(ctx)
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
	}

	return nil
}
