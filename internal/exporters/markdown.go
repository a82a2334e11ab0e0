package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/notekeeper/internal/entities"
)

// MarkdownExporter writes one markdown file per book plus an index file
// into ExportDir. Notes appear in the order the repository lists them;
// image entries with an empty URI are rendered as quoted text.
type MarkdownExporter struct {
	books         BookLister
	notes         NoteLister
	ExportDir     string
	IndexFileName string
}

func NewMarkdownExporter(books BookLister, notes NoteLister, exportDir string) *MarkdownExporter {
	return &MarkdownExporter{
		books:         books,
		notes:         notes,
		ExportDir:     exportDir,
		IndexFileName: "index.md",
	}
}

func (e *MarkdownExporter) Export() (ExportResult, error) {
	result := ExportResult{}

	if err := os.MkdirAll(e.ExportDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}

	books, err := e.books.ListBooks()
	if err != nil {
		return result, fmt.Errorf("failed to list books: %w", err)
	}

	var indexBuilder strings.Builder
	fmt.Fprintf(&indexBuilder, "# Books\n\n")

	usedNames := make(map[string]bool, len(books))
	for _, book := range books {
		// Two books may sanitize to the same name; suffix the book id so
		// one export never overwrites the other.
		fileName := sanitizeFileName(book.Title)
		if usedNames[fileName] {
			fileName = fileName + "-" + book.ID
		}
		usedNames[fileName] = true
		fileName += ".md"

		notesWritten, imagesWritten, err := e.exportBook(book, fileName)
		if err != nil {
			fmt.Printf("Failed to export book %s: %v\n", book.Title, err)
			result.BooksFailed++
			continue
		}
		result.BooksProcessed++
		result.NotesProcessed += notesWritten
		result.ImagesProcessed += imagesWritten
		fmt.Fprintf(&indexBuilder, "- [%s by %s](%s)\n", book.Title, book.Author, fileName)
	}

	indexPath := filepath.Join(e.ExportDir, e.IndexFileName)
	if err := os.WriteFile(indexPath, []byte(indexBuilder.String()), 0644); err != nil {
		return result, fmt.Errorf("failed to write index file: %w", err)
	}

	return result, nil
}

func (e *MarkdownExporter) exportBook(book entities.Book, fileName string) (int, int, error) {
	notes, err := e.notes.ListNotes(book.ID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list notes: %w", err)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "---\n")
	fmt.Fprintf(&builder, "content_type: book_notes\n")
	fmt.Fprintf(&builder, "exported_at: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&builder, "title: \"%s\"\n", strings.ReplaceAll(book.Title, "\"", "\\\""))
	fmt.Fprintf(&builder, "author: \"%s\"\n", strings.ReplaceAll(book.Author, "\"", "\\\""))
	fmt.Fprintf(&builder, "---\n\n")

	if book.Description != "" {
		fmt.Fprintf(&builder, "%s\n\n", book.Description)
	}
	fmt.Fprintf(&builder, "## Notes\n\n")

	imagesWritten := 0
	for _, note := range notes {
		fmt.Fprintf(&builder, "### %s (p. %d)\n\n", note.Title, note.PageNumber)
		for _, image := range note.Images {
			if image.URI == "" {
				fmt.Fprintf(&builder, "> %s\n\n", strings.ReplaceAll(image.Description, "\n", "\n> "))
			} else {
				fmt.Fprintf(&builder, "![%s](%s)\n\n", image.Description, image.URI)
			}
			imagesWritten++
		}
	}

	outputPath := filepath.Join(e.ExportDir, fileName)
	if err := os.WriteFile(outputPath, []byte(builder.String()), 0644); err != nil {
		return 0, 0, err
	}
	return len(notes), imagesWritten, nil
}

// sanitizeFileName strips characters that are unsafe in file names.
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
	)
	sanitized := strings.TrimSpace(replacer.Replace(name))
	if sanitized == "" {
		sanitized = "untitled"
	}
	return sanitized
}
