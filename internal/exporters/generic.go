package exporters

import "github.com/mrlokans/notekeeper/internal/entities"

// BookExporter serializes a read-only snapshot of the store into documents.
// Exporters never write back to storage.
type BookExporter interface {
	Export() (ExportResult, error)
}

// BookLister is the slice of the books repository the exporter consumes.
type BookLister interface {
	ListBooks() ([]entities.Book, error)
}

// NoteLister is the slice of the notes repository the exporter consumes.
type NoteLister interface {
	ListNotes(bookID string) ([]entities.Note, error)
}

type ExportResult struct {
	BooksProcessed  int `json:"books_processed"`
	NotesProcessed  int `json:"notes_processed"`
	ImagesProcessed int `json:"images_processed"`
	BooksFailed     int `json:"books_failed"`
}
