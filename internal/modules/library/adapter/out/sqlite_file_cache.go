package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dochub/internal/modules/library/domain"
	libraryout "dochub/internal/modules/library/port/out"
	apperrors "dochub/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteFileCache projects the backend listing into a local sqlite
// database so the catalog stays browsable when the backend is down.
type SQLiteFileCache struct {
	db *sql.DB
}

func NewSQLiteFileCache(dbPath string) (*SQLiteFileCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteFileCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

var _ libraryout.FileCache = (*SQLiteFileCache)(nil)

func (c *SQLiteFileCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS files (
  id TEXT PRIMARY KEY,
  filename TEXT NOT NULL,
  category_id TEXT,
  file_size INTEGER NOT NULL,
  current_stage TEXT,
  created_at TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create files table: %w", err)
	}
	return nil
}

func (c *SQLiteFileCache) ReplaceAll(ctx context.Context, files []domain.IngestedFile) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM files`); err != nil {
		return fmt.Errorf("clear files: %w", err)
	}
	for _, f := range files {
		if err := upsert(ctx, tx, f); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (c *SQLiteFileCache) Upsert(ctx context.Context, file domain.IngestedFile) error {
	return upsert(ctx, c.db, file)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, file domain.IngestedFile) error {
	const stmt = `
INSERT INTO files (id, filename, category_id, file_size, current_stage, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  filename=excluded.filename,
  category_id=excluded.category_id,
  file_size=excluded.file_size,
  current_stage=excluded.current_stage,
  created_at=excluded.created_at;
`
	_, err := db.ExecContext(ctx, stmt,
		file.ID,
		file.Filename,
		file.CategoryID,
		file.SizeBytes,
		string(file.Stage),
		file.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert file: %w", err)
	}
	return nil
}

func (c *SQLiteFileCache) List(ctx context.Context) ([]domain.IngestedFile, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, filename, category_id, file_size, current_stage, created_at FROM files ORDER BY created_at DESC, filename`)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []domain.IngestedFile
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

func (c *SQLiteFileCache) Get(ctx context.Context, id string) (domain.IngestedFile, error) {
	row := c.db.QueryRowContext(ctx, `SELECT id, filename, category_id, file_size, current_stage, created_at FROM files WHERE id = ?`, id)
	file, err := scanFile(row)
	if err == sql.ErrNoRows {
		return domain.IngestedFile{}, apperrors.ErrNotFound
	}
	return file, err
}

func (c *SQLiteFileCache) Remove(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (c *SQLiteFileCache) Close() error {
	return c.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (domain.IngestedFile, error) {
	var (
		file      domain.IngestedFile
		stage     string
		createdAt string
	)
	if err := row.Scan(&file.ID, &file.Filename, &file.CategoryID, &file.SizeBytes, &stage, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.IngestedFile{}, err
		}
		return domain.IngestedFile{}, fmt.Errorf("scan file: %w", err)
	}
	file.Stage = domain.IngestionStage(stage)
	file.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return file, nil
}
