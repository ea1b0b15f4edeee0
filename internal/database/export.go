package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
	er "github.com/mcorbin/corbierror"
)

type dbExport struct {
	ID         string
	CreatedAt  time.Time `db:"created_at"`
	Converted  int
	Skipped    int
	Objectives int
	Documents  int
	Content    string
}

func toExport(export dbExport) *aggregates.Export {
	return &aggregates.Export{
		ID:         export.ID,
		CreatedAt:  export.CreatedAt,
		Converted:  export.Converted,
		Skipped:    export.Skipped,
		Objectives: export.Objectives,
		Documents:  export.Documents,
		Content:    export.Content,
	}
}

func (c *Database) CreateExport(ctx context.Context, export aggregates.Export) error {
	data := dbExport{
		ID:         export.ID,
		CreatedAt:  export.CreatedAt,
		Converted:  export.Converted,
		Skipped:    export.Skipped,
		Objectives: export.Objectives,
		Documents:  export.Documents,
		Content:    export.Content,
	}
	result, err := c.db.NamedExecContext(ctx, "INSERT INTO slo_export (id, created_at, converted, skipped, objectives, documents, content) VALUES (:id, :created_at, :converted, :skipped, :objectives, :documents, :content)", data)
	if err != nil {
		return fmt.Errorf("fail to create export %s: %w", data.ID, err)
	}
	return checkResult(result, 1)
}

func (c *Database) GetExport(ctx context.Context, id string) (*aggregates.Export, error) {
	export := dbExport{}
	err := c.db.GetContext(ctx, &export, "SELECT id, created_at, converted, skipped, objectives, documents, content FROM slo_export WHERE id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, er.Newf("export %s not found", er.NotFound, true, id)
		}
		return nil, fmt.Errorf("fail to get export %s: %w", id, err)
	}
	return toExport(export), nil
}

// ListExports returns the exports without their content, newest first
func (c *Database) ListExports(ctx context.Context) ([]*aggregates.Export, error) {
	exports := []dbExport{}
	err := c.db.SelectContext(ctx, &exports, "SELECT id, created_at, converted, skipped, objectives, documents, '' AS content FROM slo_export ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("fail to list exports: %w", err)
	}
	result := []*aggregates.Export{}
	for i := range exports {
		result = append(result, toExport(exports[i]))
	}
	return result, nil
}

func (c *Database) DeleteExport(ctx context.Context, id string) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM slo_export WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("fail to delete export %s: %w", id, err)
	}
	return checkResult(result, 1)
}

// CleanExports deletes the exports created before the given date
func (c *Database) CleanExports(ctx context.Context, before time.Time) (int64, error) {
	result, err := c.db.ExecContext(ctx, "DELETE FROM slo_export WHERE created_at < $1", before)
	if err != nil {
		return 0, fmt.Errorf("fail to clean exports: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("fail to check affected row: %w", err)
	}
	return affected, nil
}
