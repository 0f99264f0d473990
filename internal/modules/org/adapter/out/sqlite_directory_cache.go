package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dochub/internal/modules/org/domain"
	orgout "dochub/internal/modules/org/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteDirectoryCache mirrors categories and users in a local sqlite
// database. Category tags are stored newline-joined; none of the
// backend's tag values may contain a newline.
type SQLiteDirectoryCache struct {
	db *sql.DB
}

func NewSQLiteDirectoryCache(dbPath string) (*SQLiteDirectoryCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteDirectoryCache{db: db}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

var _ orgout.DirectoryCache = (*SQLiteDirectoryCache)(nil)

func (c *SQLiteDirectoryCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  tags TEXT
);
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  role TEXT,
  is_active INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create directory tables: %w", err)
	}
	return nil
}

func (c *SQLiteDirectoryCache) ReplaceCategories(ctx context.Context, categories []domain.Category) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace categories: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for _, category := range categories {
		if err := upsertCategory(ctx, tx, category); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace categories: %w", err)
	}
	return nil
}

func (c *SQLiteDirectoryCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, tags FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.Category
	for rows.Next() {
		var (
			category domain.Category
			tags     string
		)
		if err := rows.Scan(&category.ID, &category.Name, &tags); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if tags != "" {
			category.Tags = strings.Split(tags, "\n")
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (c *SQLiteDirectoryCache) UpsertCategory(ctx context.Context, category domain.Category) error {
	return upsertCategory(ctx, c.db, category)
}

func (c *SQLiteDirectoryCache) RemoveCategory(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	return nil
}

func (c *SQLiteDirectoryCache) ReplaceUsers(ctx context.Context, users []domain.User) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace users: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	for _, user := range users {
		if err := upsertUser(ctx, tx, user); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace users: %w", err)
	}
	return nil
}

func (c *SQLiteDirectoryCache) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, email, role, is_active, created_at FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []domain.User
	for rows.Next() {
		var (
			user      domain.User
			active    int
			createdAt string
		)
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.Active = active != 0
		user.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		users = append(users, user)
	}
	return users, rows.Err()
}

func (c *SQLiteDirectoryCache) UpsertUser(ctx context.Context, user domain.User) error {
	return upsertUser(ctx, c.db, user)
}

func (c *SQLiteDirectoryCache) RemoveUser(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

func (c *SQLiteDirectoryCache) Close() error {
	return c.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertCategory(ctx context.Context, db execer, category domain.Category) error {
	const stmt = `
INSERT INTO categories (id, name, tags)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  tags=excluded.tags;
`
	_, err := db.ExecContext(ctx, stmt, category.ID, category.Name, strings.Join(category.Tags, "\n"))
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

func upsertUser(ctx context.Context, db execer, user domain.User) error {
	const stmt = `
INSERT INTO users (id, name, email, role, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  email=excluded.email,
  role=excluded.role,
  is_active=excluded.is_active,
  created_at=excluded.created_at;
`
	active := 0
	if user.Active {
		active = 1
	}
	_, err := db.ExecContext(ctx, stmt, user.ID, user.Name, user.Email, user.Role, active, user.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
