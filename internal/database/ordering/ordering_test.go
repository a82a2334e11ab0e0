package ordering

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

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	dbPath := "./test_ordering_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{}, &entities.Note{}, &entities.Image{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func intp(v int) *int { return &v }

func TestNext_NoChildren(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Book{ID: "b1", Title: "Dune", Author: "Herbert"}).Error)

	next, err := Next(db, "notes", "book_id", "b1")
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestNext_AfterExistingChildren(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Book{ID: "b1", Title: "Dune", Author: "Herbert"}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n1", BookID: "b1", Title: "x", PageNumber: 1, SortOrder: intp(0)}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n2", BookID: "b1", Title: "y", PageNumber: 2, SortOrder: intp(7)}).Error)

	next, err := Next(db, "notes", "book_id", "b1")
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestNext_ScopedToParent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Book{ID: "b1", Title: "Dune", Author: "Herbert"}).Error)
	require.NoError(t, db.Create(&entities.Book{ID: "b2", Title: "Emma", Author: "Austen"}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n1", BookID: "b1", Title: "x", PageNumber: 1, SortOrder: intp(4)}).Error)

	next, err := Next(db, "notes", "book_id", "b2")
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestResequence_RewritesPositions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Book{ID: "b1", Title: "Dune", Author: "Herbert"}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n1", BookID: "b1", Title: "x", PageNumber: 1, SortOrder: intp(0)}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n2", BookID: "b1", Title: "y", PageNumber: 2, SortOrder: intp(5)}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n3", BookID: "b1", Title: "z", PageNumber: 3, SortOrder: intp(9)}).Error)

	require.NoError(t, Resequence(db, "notes", "book_id", "b1", []string{"n3", "n1", "n2"}))

	var notes []entities.Note
	require.NoError(t, db.Order("sort_order ASC").Find(&notes).Error)
	require.Len(t, notes, 3)
	assert.Equal(t, "n3", notes[0].ID)
	assert.Equal(t, "n1", notes[1].ID)
	assert.Equal(t, "n2", notes[2].ID)
	assert.Equal(t, 0, *notes[0].SortOrder)
	assert.Equal(t, 1, *notes[1].SortOrder)
	assert.Equal(t, 2, *notes[2].SortOrder)
}

func TestResequence_IgnoresForeignIDs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, db.Create(&entities.Book{ID: "b1", Title: "Dune", Author: "Herbert"}).Error)
	require.NoError(t, db.Create(&entities.Book{ID: "b2", Title: "Emma", Author: "Austen"}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "n1", BookID: "b1", Title: "x", PageNumber: 1, SortOrder: intp(0)}).Error)
	require.NoError(t, db.Create(&entities.Note{ID: "other", BookID: "b2", Title: "y", PageNumber: 1, SortOrder: intp(3)}).Error)

	// "other" belongs to a different book and must keep its position.
	require.NoError(t, Resequence(db, "notes", "book_id", "b1", []string{"other", "n1"}))

	var foreign entities.Note
	require.NoError(t, db.Where("id = ?", "other").First(&foreign).Error)
	assert.Equal(t, 3, *foreign.SortOrder)

	var mine entities.Note
	require.NoError(t, db.Where("id = ?", "n1").First(&mine).Error)
	assert.Equal(t, 1, *mine.SortOrder)
}
