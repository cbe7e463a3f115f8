package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jorg-4/proedit-core/internal/project"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "library.db"), nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesLibrary(t *testing.T) {
	db := openTestDB(t)

	tables := []string{"projects", "snapshots", "_migrations"}
	for _, table := range tables {
		var name string
		err := db.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_WALEnabled(t *testing.T) {
	db := openTestDB(t)

	var journalMode string
	if err := db.Conn().QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode error = %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "library.db")

	db1, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	db1.Close()

	db2, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer db2.Close()

	var count int
	if err := db2.Conn().QueryRow("SELECT COUNT(*) FROM _migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations error = %v", err)
	}
	if count != 1 {
		t.Errorf("migration count = %d, want 1", count)
	}
}

func TestRepository_SaveGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db.Conn())
	ctx := context.Background()

	doc := &project.ProjectFile{
		Version:    project.CurrentVersion,
		AppVersion: "0.9.0",
		Project:    project.NewProject("Feature"),
	}
	data, err := project.Save(doc)
	if err != nil {
		t.Fatalf("serialize project: %v", err)
	}

	rec := &ProjectRecord{
		ID:         "p1",
		Name:       "Feature",
		Version:    project.CurrentVersion,
		AppVersion: "0.9.0",
		Data:       data,
	}
	if err := repo.SaveProject(ctx, rec); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}

	got, err := repo.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got == nil || got.Name != "Feature" || got.Version != project.CurrentVersion {
		t.Fatalf("GetProject = %+v", got)
	}

	loaded, err := project.Load(got.Data)
	if err != nil {
		t.Fatalf("stored document no longer loads: %v", err)
	}
	if loaded.Project.Name != "Feature" {
		t.Fatalf("loaded project name = %q", loaded.Project.Name)
	}

	byName, err := repo.GetProjectByName(ctx, "Feature")
	if err != nil || byName == nil || byName.ID != "p1" {
		t.Fatalf("GetProjectByName = %+v, err %v", byName, err)
	}

	missing, err := repo.GetProject(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing project should be (nil, nil), got %+v, %v", missing, err)
	}
}

func TestRepository_SaveProjectUpserts(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db.Conn())
	ctx := context.Background()

	rec := &ProjectRecord{ID: "p1", Name: "Draft", Version: 3, Data: []byte(`{}`)}
	if err := repo.SaveProject(ctx, rec); err != nil {
		t.Fatalf("first save: %v", err)
	}
	rec.Name = "Final"
	rec.Data = []byte(`{"version":3}`)
	if err := repo.SaveProject(ctx, rec); err != nil {
		t.Fatalf("second save: %v", err)
	}

	list, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Final" {
		t.Fatalf("upsert produced %+v", list)
	}
}

func TestRepository_DeleteProjectCascadesSnapshots(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db.Conn())
	ctx := context.Background()

	rec := &ProjectRecord{ID: "p1", Name: "Feature", Version: 3, Data: []byte(`{}`)}
	if err := repo.SaveProject(ctx, rec); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if err := repo.SaveSnapshot(ctx, "p1", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	if err := repo.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	snaps, err := repo.ListSnapshots(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("snapshots survived project deletion: %d", len(snaps))
	}
}

func TestRepository_PruneSnapshotsKeepsNewest(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db.Conn())
	ctx := context.Background()

	rec := &ProjectRecord{ID: "p1", Name: "Feature", Version: 3, Data: []byte(`{}`)}
	if err := repo.SaveProject(ctx, rec); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := repo.SaveSnapshot(ctx, "p1", []byte{byte('a' + i)}); err != nil {
			t.Fatalf("SaveSnapshot %d: %v", i, err)
		}
	}

	if err := repo.PruneSnapshots(ctx, "p1", 2); err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}

	snaps, err := repo.ListSnapshots(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("kept %d snapshots, want 2", len(snaps))
	}
	// Newest first.
	if string(snaps[0].Data) != "e" || string(snaps[1].Data) != "d" {
		t.Fatalf("pruned the wrong snapshots: %q %q", snaps[0].Data, snaps[1].Data)
	}
}
