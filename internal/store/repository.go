package store

import (
	"context"
	"database/sql"
	"time"
)

// ProjectRecord is one saved project document plus library metadata.
// Data holds the versioned JSON exactly as the project package wrote it.
type ProjectRecord struct {
	ID         string
	Name       string
	Version    int
	AppVersion string
	Data       []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SnapshotRecord is an autosave copy of a project document.
type SnapshotRecord struct {
	ID        int64
	ProjectID string
	Data      []byte
	CreatedAt time.Time
}

type Repository interface {
	SaveProject(ctx context.Context, rec *ProjectRecord) error
	GetProject(ctx context.Context, id string) (*ProjectRecord, error)
	GetProjectByName(ctx context.Context, name string) (*ProjectRecord, error)
	ListProjects(ctx context.Context) ([]*ProjectRecord, error)
	DeleteProject(ctx context.Context, id string) error

	SaveSnapshot(ctx context.Context, projectID string, data []byte) error
	ListSnapshots(ctx context.Context, projectID string, limit int) ([]*SnapshotRecord, error)
	PruneSnapshots(ctx context.Context, projectID string, keep int) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// SaveProject inserts a new record or replaces the document and
// metadata of an existing one, keeping the original created_at.
func (r *SQLiteRepository) SaveProject(ctx context.Context, rec *ProjectRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, version, app_version, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			app_version = excluded.app_version,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, rec.ID, rec.Name, rec.Version, rec.AppVersion, rec.Data, now, now)
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, version, app_version, data, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)
	return r.scanProject(row)
}

func (r *SQLiteRepository) GetProjectByName(ctx context.Context, name string) (*ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, version, app_version, data, created_at, updated_at
		FROM projects WHERE name = ?
	`, name)
	return r.scanProject(row)
}

func (r *SQLiteRepository) scanProject(row *sql.Row) (*ProjectRecord, error) {
	var rec ProjectRecord
	var createdAt, updatedAt string

	err := row.Scan(&rec.ID, &rec.Name, &rec.Version, &rec.AppVersion, &rec.Data, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &rec, nil
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, version, app_version, data, created_at, updated_at
		FROM projects ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*ProjectRecord
	for rows.Next() {
		var rec ProjectRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Version, &rec.AppVersion, &rec.Data, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, projectID string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (project_id, data, created_at)
		VALUES (?, ?, ?)
	`, projectID, data, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, projectID string, limit int) ([]*SnapshotRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, data, created_at
		FROM snapshots WHERE project_id = ?
		ORDER BY id DESC LIMIT ?
	`, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*SnapshotRecord
	for rows.Next() {
		var s SnapshotRecord
		var createdAt string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Data, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		snaps = append(snaps, &s)
	}
	return snaps, rows.Err()
}

// PruneSnapshots keeps the newest keep snapshots for a project and
// deletes the rest.
func (r *SQLiteRepository) PruneSnapshots(ctx context.Context, projectID string, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE project_id = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE project_id = ? ORDER BY id DESC LIMIT ?
		)
	`, projectID, projectID, keep)
	return err
}
