// Package notes provides database operations for notes and their image
// entries.
//
// Notes always travel with their images: list and get operations preload
// the image set, and UpsertNote treats the supplied images as the
// authoritative full set for the note — existing rows are replaced, never
// merged. Every multi-statement mutation runs in a single transaction.
package notes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/notekeeper/internal/database"
	"github.com/mrlokans/notekeeper/internal/database/ordering"
	"github.com/mrlokans/notekeeper/internal/entities"
)

// Repository handles all note and image database operations.
type Repository struct {
	store *database.Store
}

// NewRepository creates a new notes repository.
func NewRepository(store *database.Store) *Repository {
	return &Repository{store: store}
}

// ListNotes retrieves notes with their images preloaded. An empty bookID
// returns notes of every book. Order is ascending sort position, then
// ascending page number, then most recently created first.
func (r *Repository) ListNotes(bookID string) ([]entities.Note, error) {
	db, err := r.store.Handle()
	if err != nil {
		return nil, err
	}
	query := db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, created_at ASC")
	}).Order("sort_order ASC, page_number ASC, created_at DESC")
	if bookID != "" {
		query = query.Where("book_id = ?", bookID)
	}
	var notes []entities.Note
	err = query.Find(&notes).Error
	return notes, err
}

// GetNote retrieves a note with its images. Absence is reported as
// (nil, nil).
func (r *Repository) GetNote(id string) (*entities.Note, error) {
	db, err := r.store.Handle()
	if err != nil {
		return nil, err
	}
	var note entities.Note
	err = db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC, created_at ASC")
	}).Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpsertNote inserts or updates the note and replaces its full image set,
// all in one transaction.
//
// On insert, a nil SortOrder appends the note after the current maximum
// position in its book; the position is computed inside the transaction so
// concurrent appends cannot collide. On update, a nil SortOrder keeps the
// note where it is. Each image with a nil SortOrder defaults to its position
// in the supplied slice. Assigned positions are written back to the passed
// entities.
func (r *Repository) UpsertNote(note *entities.Note) error {
	if err := validateNote(note); err != nil {
		return err
	}
	if strings.TrimSpace(note.Title) == "" {
		note.Title = fmt.Sprintf("Page %d's Note", note.PageNumber)
	}
	db, err := r.store.Handle()
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Note
		result := tx.Select("id", "created_at", "sort_order").
			Where("id = ?", note.ID).First(&existing)

		switch {
		case result.Error == nil:
			if note.SortOrder == nil {
				note.SortOrder = existing.SortOrder
			}
			note.CreatedAt = existing.CreatedAt
			note.UpdatedAt = time.Now()
			err := tx.Model(&entities.Note{}).Where("id = ?", note.ID).Updates(map[string]any{
				"book_id":     note.BookID,
				"title":       note.Title,
				"page_number": note.PageNumber,
				"sort_order":  note.SortOrder,
				"updated_at":  note.UpdatedAt,
			}).Error
			if err != nil {
				return err
			}
			// The supplied images are the full authoritative set.
			if err := tx.Where("note_id = ?", note.ID).Delete(&entities.Image{}).Error; err != nil {
				return err
			}
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			if note.SortOrder == nil {
				next, err := ordering.Next(tx, "notes", "book_id", note.BookID)
				if err != nil {
					return err
				}
				note.SortOrder = &next
			}
			if err := tx.Omit("Images").Create(note).Error; err != nil {
				return err
			}
		default:
			return result.Error
		}

		for i := range note.Images {
			img := &note.Images[i]
			img.NoteID = note.ID
			if img.SortOrder == nil {
				position := i
				img.SortOrder = &position
			}
			if err := tx.Create(img).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteNote removes the note and all its images in one transaction.
// Deleting an absent id is a no-op, not an error.
func (r *Repository) DeleteNote(id string) error {
	db, err := r.store.Handle()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&entities.Image{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Note{}).Error
	})
}

// ReorderNotes rewrites the sort positions of the book's notes to match the
// given sequence, atomically. Ids that do not belong to the book are
// ignored.
func (r *Repository) ReorderNotes(bookID string, orderedIDs []string) error {
	db, err := r.store.Handle()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return ordering.Resequence(tx, "notes", "book_id", bookID, orderedIDs)
	})
}

// ReorderImages rewrites the sort positions of the note's images to match
// the given sequence, atomically. Ids that do not belong to the note are
// ignored.
func (r *Repository) ReorderImages(noteID string, orderedIDs []string) error {
	db, err := r.store.Handle()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return ordering.Resequence(tx, "images", "note_id", noteID, orderedIDs)
	})
}

func validateNote(note *entities.Note) error {
	if note == nil || strings.TrimSpace(note.ID) == "" {
		return &database.ValidationError{Entity: "note", Field: "id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(note.BookID) == "" {
		return &database.ValidationError{Entity: "note", Field: "book_id", Reason: "must not be empty"}
	}
	if note.PageNumber <= 0 {
		return &database.ValidationError{Entity: "note", Field: "page_number", Reason: "must be positive"}
	}
	if note.SortOrder != nil && *note.SortOrder < 0 {
		return &database.ValidationError{Entity: "note", Field: "sort_order", Reason: "must not be negative"}
	}
	for i := range note.Images {
		img := &note.Images[i]
		if strings.TrimSpace(img.ID) == "" {
			return &database.ValidationError{Entity: "image", Field: "id", Reason: "must not be empty"}
		}
		if img.SortOrder != nil && *img.SortOrder < 0 {
			return &database.ValidationError{Entity: "image", Field: "sort_order", Reason: "must not be negative"}
		}
	}
	return nil
}
