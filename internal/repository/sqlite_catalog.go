package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/estudiarq/archisheets/internal/domain"
)

// CatalogCache stores a local copy of the master catalog so the dashboard
// renders before the network round-trip and a freshly created project is
// visible even while the remote append still lags. The remote catalog
// stays the source of truth; Replace swaps the whole cache on every
// successful fetch.
type CatalogCache interface {
	Replace(ctx context.Context, projects []*domain.Project) error
	Put(ctx context.Context, p *domain.Project) error
	List(ctx context.Context) ([]*domain.Project, error)
	GetBySheetID(ctx context.Context, sheetID string) (*domain.Project, error)
	Remove(ctx context.Context, id string) error
}

// SQLiteCatalogCache implements CatalogCache using a SQLite database.
type SQLiteCatalogCache struct {
	db *sql.DB
}

// NewSQLiteCatalogCache creates a new SQLiteCatalogCache.
func NewSQLiteCatalogCache(db *sql.DB) *SQLiteCatalogCache {
	return &SQLiteCatalogCache{db: db}
}

func (r *SQLiteCatalogCache) Replace(ctx context.Context, projects []*domain.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache replace: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_projects`); err != nil {
		return fmt.Errorf("clearing catalog cache: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, p := range projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_projects (id, name, sheet_id, created_at, is_template, row_order, cached_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.SheetID, p.CreatedAt.Format(time.RFC3339), boolToInt(p.IsTemplate), i, now,
		); err != nil {
			return fmt.Errorf("caching project %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache replace: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteCatalogCache) Put(ctx context.Context, p *domain.Project) error {
	var maxOrder sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(row_order) FROM catalog_projects`).Scan(&maxOrder); err != nil {
		return fmt.Errorf("reading cache order: %w", err)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_projects (id, name, sheet_id, created_at, is_template, row_order, cached_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, sheet_id = excluded.sheet_id,
		 	is_template = excluded.is_template, cached_at = excluded.cached_at`,
		p.ID, p.Name, p.SheetID, p.CreatedAt.Format(time.RFC3339), boolToInt(p.IsTemplate),
		maxOrder.Int64+1, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("caching project %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteCatalogCache) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, sheet_id, created_at, is_template FROM catalog_projects ORDER BY row_order`)
	if err != nil {
		return nil, fmt.Errorf("listing cached projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteCatalogCache) GetBySheetID(ctx context.Context, sheetID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, sheet_id, created_at, is_template FROM catalog_projects WHERE sheet_id = ?`, sheetID)

	var p domain.Project
	var createdAtStr string
	var isTemplate int
	err := row.Scan(&p.ID, &p.Name, &p.SheetID, &createdAtStr, &isTemplate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning cached project: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	p.IsTemplate = intToBool(isTemplate)
	return &p, nil
}

func (r *SQLiteCatalogCache) Remove(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM catalog_projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("removing cached project: %w", err)
	}
	return nil
}

func scanProject(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var createdAtStr string
	var isTemplate int
	if err := rows.Scan(&p.ID, &p.Name, &p.SheetID, &createdAtStr, &isTemplate); err != nil {
		return nil, fmt.Errorf("scanning cached project row: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	p.IsTemplate = intToBool(isTemplate)
	return &p, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
