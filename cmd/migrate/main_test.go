package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"catalog-be/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sample = `
-- +migrate Up
CREATE TABLE users (id BIGSERIAL PRIMARY KEY);
ALTER TABLE users ADD COLUMN name TEXT;

-- +migrate Down
DROP TABLE users;
`

func newMigrator(t *testing.T) (*migrator, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &migrator{db: conn, tx: db.NewTransactor(conn), log: zap.NewNop()}, mock
}

func writeMigration(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSection(t *testing.T) {
	up := section(sample, "Up")
	assert.Contains(t, up, "CREATE TABLE users")
	assert.Contains(t, up, "ALTER TABLE users")
	assert.NotContains(t, up, "DROP TABLE")
	assert.NotContains(t, up, "-- +migrate")

	down := section(sample, "Down")
	assert.Contains(t, down, "DROP TABLE users")
	assert.NotContains(t, down, "CREATE TABLE")
}

func TestSection_RepoMigration(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	up := section(string(content), "Up")
	for _, table := range []string{"users", "products", "cart_items", "orders", "order_items"} {
		assert.Contains(t, up, "CREATE TABLE "+table)
	}
	assert.Contains(t, up, "CREATE UNIQUE INDEX idx_cart_items_user_product ON cart_items (user_id, product_id)")
	assert.Contains(t, section(string(content), "Down"), "DROP TABLE IF EXISTS order_items")
}

func TestUp(t *testing.T) {
	m, mock := newMigrator(t)
	dir := t.TempDir()
	applied := writeMigration(t, dir, "0001_init.sql", sample)
	pending := writeMigration(t, dir, "0002_seed.sql", "-- +migrate Up\nINSERT INTO users (name) VALUES ('a');\n-- +migrate Down\nDELETE FROM users;\n")

	mock.ExpectQuery(`SELECT EXISTS.*schema_migrations`).
		WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS.*schema_migrations`).
		WithArgs("0002_seed.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO schema_migrations`).
		WithArgs("0002_seed.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, m.up(context.Background(), []string{applied, pending}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUp_FailureRollsBack(t *testing.T) {
	m, mock := newMigrator(t)
	file := writeMigration(t, t.TempDir(), "0001_init.sql", sample)

	mock.ExpectQuery(`SELECT EXISTS.*schema_migrations`).
		WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE users`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err := m.up(context.Background(), []string{file})
	assert.ErrorContains(t, err, "syntax error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDown(t *testing.T) {
	t.Run("RollsBackLatest", func(t *testing.T) {
		m, mock := newMigrator(t)
		file := writeMigration(t, t.TempDir(), "0001_init.sql", sample)

		mock.ExpectQuery(`SELECT version FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_init.sql"))
		mock.ExpectBegin()
		mock.ExpectExec(`DROP TABLE users`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM schema_migrations`).
			WithArgs("0001_init.sql").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, m.down(context.Background(), []string{file}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NothingApplied", func(t *testing.T) {
		m, mock := newMigrator(t)
		mock.ExpectQuery(`SELECT version FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		assert.NoError(t, m.down(context.Background(), nil))
	})

	t.Run("MissingFile", func(t *testing.T) {
		m, mock := newMigrator(t)
		mock.ExpectQuery(`SELECT version FROM schema_migrations`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0009_gone.sql"))

		assert.ErrorContains(t, m.down(context.Background(), nil), "0009_gone.sql")
	})
}

func TestRun_UnknownMode(t *testing.T) {
	m, mock := newMigrator(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := m.run(context.Background(), "sideways", t.TempDir())
	assert.ErrorContains(t, err, "unknown mode")
}
