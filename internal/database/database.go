package database

import (
	"fmt"
	"log"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/notekeeper/internal/entities"
)

// Store owns the single SQLite handle for the process. It is opened lazily:
// the first call to Handle opens the file, pins a single underlying
// connection and runs the schema migrations before any statement executes.
// Close is safe to call on a store that was never opened.
type Store struct {
	path string

	mu      sync.Mutex
	db      *gorm.DB
	openErr error
}

// NewStore creates a store for the given file path without opening it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Handle returns the open database handle, opening the store and ensuring
// the schema on first use.
func (s *Store) Handle() (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if s.openErr != nil {
		return nil, s.openErr
	}

	db, err := s.open()
	if err != nil {
		s.openErr = err
		return nil, s.openErr
	}
	s.db = db
	return s.db, nil
}

func (s *Store) open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s: %v", ErrInitialization, s.path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	// A single connection serializes statement execution; transactions are
	// only needed for atomicity, not for mutual exclusion.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: could not enable foreign keys: %v", ErrInitialization, err)
	}

	if err := EnsureSchema(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Printf("Store initialized at %s", s.path)
	return db, nil
}

// Close releases the underlying connection. A never-opened store is a no-op.
// The store can be reopened by a later Handle call.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetStats returns the current number of books, notes and images. The three
// counts are independent queries and are not point-in-time consistent with
// each other.
func (s *Store) GetStats() (totalBooks, totalNotes, totalImages int64, err error) {
	db, err := s.Handle()
	if err != nil {
		return
	}
	err = db.Model(&entities.Book{}).Count(&totalBooks).Error
	if err != nil {
		return
	}
	err = db.Model(&entities.Note{}).Count(&totalNotes).Error
	if err != nil {
		return
	}
	err = db.Model(&entities.Image{}).Count(&totalImages).Error
	return
}

// ClearAll removes every row from the store, children first, in a single
// transaction.
func (s *Store) ClearAll() error {
	db, err := s.Handle()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entities.Note{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&entities.Book{}).Error
	})
}
