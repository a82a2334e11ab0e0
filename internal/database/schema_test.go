package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/notekeeper/internal/entities"
)

func openRawDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_schema_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

// createLegacySchema builds the table layout of an early application
// version: no sort_order columns, no description or cover_reference.
func createLegacySchema(t *testing.T, db *gorm.DB) {
	statements := []string{
		`CREATE TABLE books (id text PRIMARY KEY, title text, author text, created_at datetime, updated_at datetime)`,
		`CREATE TABLE notes (id text PRIMARY KEY, book_id text, title text, page_number integer, created_at datetime, updated_at datetime)`,
		`CREATE TABLE images (id text PRIMARY KEY, note_id text, uri text, description text, created_at datetime, updated_at datetime)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
}

func TestEnsureSchema_FreshStore(t *testing.T) {
	db, cleanup := openRawDB(t)
	defer cleanup()

	require.NoError(t, EnsureSchema(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&entities.Book{}))
	assert.True(t, migrator.HasTable(&entities.Note{}))
	assert.True(t, migrator.HasTable(&entities.Image{}))
	assert.True(t, migrator.HasColumn(&entities.Note{}, "sort_order"))
	assert.True(t, migrator.HasColumn(&entities.Image{}, "sort_order"))
	assert.True(t, migrator.HasColumn(&entities.Book{}, "cover_reference"))
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db, cleanup := openRawDB(t)
	defer cleanup()

	require.NoError(t, EnsureSchema(db))
	require.NoError(t, EnsureSchema(db))
}

func TestEnsureSchema_BackfillsNoteOrder(t *testing.T) {
	db, cleanup := openRawDB(t)
	defer cleanup()

	createLegacySchema(t, db)

	require.NoError(t, db.Exec(
		`INSERT INTO books VALUES ('b1', 'Dune', 'Herbert', '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)
	// Inserted out of creation order on purpose.
	require.NoError(t, db.Exec(
		`INSERT INTO notes VALUES ('n-late', 'b1', 'third', 3, '2024-01-03 10:00:00', '2024-01-03 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO notes VALUES ('n-early', 'b1', 'first', 1, '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO notes VALUES ('n-mid', 'b1', 'second', 2, '2024-01-02 10:00:00', '2024-01-02 10:00:00')`).Error)

	require.NoError(t, EnsureSchema(db))

	type row struct {
		ID        string
		SortOrder int
	}
	var rows []row
	require.NoError(t, db.Table("notes").Select("id, sort_order").Order("sort_order ASC").Scan(&rows).Error)

	require.Len(t, rows, 3)
	assert.Equal(t, row{ID: "n-early", SortOrder: 0}, rows[0])
	assert.Equal(t, row{ID: "n-mid", SortOrder: 1}, rows[1])
	assert.Equal(t, row{ID: "n-late", SortOrder: 2}, rows[2])
}

func TestEnsureSchema_BackfillRunsOnlyOnce(t *testing.T) {
	db, cleanup := openRawDB(t)
	defer cleanup()

	createLegacySchema(t, db)
	require.NoError(t, db.Exec(
		`INSERT INTO books VALUES ('b1', 'Dune', 'Herbert', '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO notes VALUES ('n1', 'b1', 'first', 1, '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)

	require.NoError(t, EnsureSchema(db))

	// A position assigned after migration must survive later calls.
	require.NoError(t, db.Exec(`UPDATE notes SET sort_order = 5 WHERE id = 'n1'`).Error)
	require.NoError(t, EnsureSchema(db))

	var sortOrder int
	require.NoError(t, db.Table("notes").Select("sort_order").Where("id = ?", "n1").Scan(&sortOrder).Error)
	assert.Equal(t, 5, sortOrder)
}

func TestEnsureSchema_FailedBackfillIsNotFatal(t *testing.T) {
	db, cleanup := openRawDB(t)
	defer cleanup()

	createLegacySchema(t, db)
	require.NoError(t, db.Exec(
		`INSERT INTO books VALUES ('b1', 'Dune', 'Herbert', '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO notes VALUES ('n1', 'b1', 'first', 1, '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)

	// Make the notes backfill UPDATE fail while the ALTERs still succeed.
	require.NoError(t, db.Exec(
		`CREATE TRIGGER block_note_updates BEFORE UPDATE ON notes
		 BEGIN SELECT RAISE(ABORT, 'locked'); END;`).Error)

	// A failed additive step is skipped; startup must still succeed.
	require.NoError(t, EnsureSchema(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasColumn(&entities.Note{}, "sort_order"))
	assert.True(t, migrator.HasColumn(&entities.Image{}, "sort_order"))
}

func TestEnsureSchema_BackfillsImageOrder(t *testing.T) {
	db, cleanup := openRawDB(t)
	defer cleanup()

	createLegacySchema(t, db)
	require.NoError(t, db.Exec(
		`INSERT INTO books VALUES ('b1', 'Dune', 'Herbert', '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO notes VALUES ('n1', 'b1', 'first', 1, '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO images VALUES ('i-b', 'n1', '', 'second', '2024-01-02 10:00:00', '2024-01-02 10:00:00')`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO images VALUES ('i-a', 'n1', '', 'first', '2024-01-01 10:00:00', '2024-01-01 10:00:00')`).Error)

	require.NoError(t, EnsureSchema(db))

	type row struct {
		ID        string
		SortOrder int
	}
	var rows []row
	require.NoError(t, db.Table("images").Select("id, sort_order").Order("sort_order ASC").Scan(&rows).Error)

	require.Len(t, rows, 2)
	assert.Equal(t, row{ID: "i-a", SortOrder: 0}, rows[0])
	assert.Equal(t, row{ID: "i-b", SortOrder: 1}, rows[1])
}
