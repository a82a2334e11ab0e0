// Package books provides database operations for book management.
//
// # Usage
//
//	repo := books.NewRepository(store)
//	book, err := repo.GetBook("b1")
package books

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/notekeeper/internal/database"
	"github.com/mrlokans/notekeeper/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	store *database.Store
}

// NewRepository creates a new books repository.
func NewRepository(store *database.Store) *Repository {
	return &Repository{store: store}
}

// ListBooks retrieves all books, most recently created first. An empty store
// yields an empty slice, not an error.
func (r *Repository) ListBooks() ([]entities.Book, error) {
	db, err := r.store.Handle()
	if err != nil {
		return nil, err
	}
	var books []entities.Book
	err = db.Order("created_at DESC").Find(&books).Error
	return books, err
}

// GetBook retrieves a book by id. Absence is reported as (nil, nil).
func (r *Repository) GetBook(id string) (*entities.Book, error) {
	db, err := r.store.Handle()
	if err != nil {
		return nil, err
	}
	var book entities.Book
	err = db.Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpsertBook inserts the book under its caller-supplied id, or updates all
// mutable fields of the existing row with that id. CreatedAt is immutable;
// UpdatedAt is refreshed on every update.
func (r *Repository) UpsertBook(book *entities.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	db, err := r.store.Handle()
	if err != nil {
		return err
	}

	var existing entities.Book
	result := db.Select("id", "created_at").Where("id = ?", book.ID).First(&existing)
	switch {
	case result.Error == nil:
		book.CreatedAt = existing.CreatedAt
		book.UpdatedAt = time.Now()
		return db.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
			"title":           book.Title,
			"author":          book.Author,
			"description":     book.Description,
			"cover_reference": book.CoverReference,
			"updated_at":      book.UpdatedAt,
		}).Error
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return db.Omit("Notes").Create(book).Error
	default:
		return result.Error
	}
}

// DeleteBook removes the book and, in the same transaction, every descendant
// note and image. Deleting an absent id is a no-op, not an error.
func (r *Repository) DeleteBook(id string) error {
	db, err := r.store.Handle()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		noteIDs := tx.Session(&gorm.Session{NewDB: true}).
			Model(&entities.Note{}).Select("id").Where("book_id = ?", id)
		if err := tx.Where("note_id IN (?)", noteIDs).Delete(&entities.Image{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Note{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Book{}).Error
	})
}

func validateBook(book *entities.Book) error {
	if book == nil || strings.TrimSpace(book.ID) == "" {
		return &database.ValidationError{Entity: "book", Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(book.Title) == "" {
		return &database.ValidationError{Entity: "book", Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(book.Author) == "" {
		return &database.ValidationError{Entity: "book", Field: "author", Reason: "must not be empty"}
	}
	return nil
}
