package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists. The driver is fixed for the
// lifetime of the process; callers that want a fallback adapter decide that
// once at startup, not at request time.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:testbook.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/testbook?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS exam_categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  icon TEXT NOT NULL,
  total_tests INTEGER NOT NULL DEFAULT 0,
  total_courses INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS courses (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES exam_categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  instructor TEXT NOT NULL,
  price REAL NOT NULL,
  discounted_price REAL,
  duration_min INTEGER NOT NULL,
  total_lessons INTEGER NOT NULL,
  total_quizzes INTEGER NOT NULL,
  level TEXT NOT NULL,
  thumbnail TEXT NOT NULL,
  rating REAL NOT NULL DEFAULT 0,
  enrollments INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS test_series (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES exam_categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price REAL NOT NULL,
  discounted_price REAL,
  total_tests INTEGER NOT NULL,
  validity_days INTEGER NOT NULL,
  thumbnail TEXT NOT NULL,
  rating REAL NOT NULL DEFAULT 0,
  purchases INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS mock_tests (
  id TEXT PRIMARY KEY,
  series_id TEXT NOT NULL REFERENCES test_series(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  duration_min INTEGER NOT NULL,
  total_questions INTEGER NOT NULL,
  max_marks REAL NOT NULL,
  passing_percentage INTEGER NOT NULL,
  difficulty TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  test_id TEXT NOT NULL REFERENCES mock_tests(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  question_text TEXT NOT NULL,
  options_json TEXT NOT NULL,
  correct_option INTEGER NOT NULL,
  explanation TEXT NOT NULL DEFAULT '',
  marks REAL NOT NULL,
  negative_marks REAL NOT NULL DEFAULT 0,
  subject TEXT NOT NULL DEFAULT '',
  difficulty TEXT NOT NULL DEFAULT '',
  UNIQUE (test_id, position)
);

CREATE TABLE IF NOT EXISTS study_materials (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES exam_categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  file_url TEXT NOT NULL,
  file_type TEXT NOT NULL,
  pages INTEGER,
  thumbnail TEXT NOT NULL,
  downloads INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_progress (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  item_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  progress INTEGER NOT NULL DEFAULT 0,
  score REAL,
  completed INTEGER NOT NULL DEFAULT 0,
  started_at INTEGER NOT NULL,
  completed_at INTEGER,
  updated_at INTEGER NOT NULL,
  UNIQUE (user_id, item_id, item_type)
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS exam_categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  icon TEXT NOT NULL,
  total_tests INTEGER NOT NULL DEFAULT 0,
  total_courses INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS courses (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES exam_categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  instructor TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  discounted_price DOUBLE PRECISION,
  duration_min INTEGER NOT NULL,
  total_lessons INTEGER NOT NULL,
  total_quizzes INTEGER NOT NULL,
  level TEXT NOT NULL,
  thumbnail TEXT NOT NULL,
  rating DOUBLE PRECISION NOT NULL DEFAULT 0,
  enrollments INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS test_series (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES exam_categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  discounted_price DOUBLE PRECISION,
  total_tests INTEGER NOT NULL,
  validity_days INTEGER NOT NULL,
  thumbnail TEXT NOT NULL,
  rating DOUBLE PRECISION NOT NULL DEFAULT 0,
  purchases INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS mock_tests (
  id TEXT PRIMARY KEY,
  series_id TEXT NOT NULL REFERENCES test_series(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  duration_min INTEGER NOT NULL,
  total_questions INTEGER NOT NULL,
  max_marks DOUBLE PRECISION NOT NULL,
  passing_percentage INTEGER NOT NULL,
  difficulty TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
  id TEXT PRIMARY KEY,
  test_id TEXT NOT NULL REFERENCES mock_tests(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  question_text TEXT NOT NULL,
  options_json TEXT NOT NULL,
  correct_option INTEGER NOT NULL,
  explanation TEXT NOT NULL DEFAULT '',
  marks DOUBLE PRECISION NOT NULL,
  negative_marks DOUBLE PRECISION NOT NULL DEFAULT 0,
  subject TEXT NOT NULL DEFAULT '',
  difficulty TEXT NOT NULL DEFAULT '',
  UNIQUE (test_id, position)
);

CREATE TABLE IF NOT EXISTS study_materials (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES exam_categories(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  file_url TEXT NOT NULL,
  file_type TEXT NOT NULL,
  pages INTEGER,
  thumbnail TEXT NOT NULL,
  downloads INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_progress (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  item_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  progress INTEGER NOT NULL DEFAULT 0,
  score DOUBLE PRECISION,
  completed BOOLEAN NOT NULL DEFAULT FALSE,
  started_at BIGINT NOT NULL,
  completed_at BIGINT,
  updated_at BIGINT NOT NULL,
  UNIQUE (user_id, item_id, item_type)
);
`
