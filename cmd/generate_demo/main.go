// Command generate_demo fills a database with sample books, notes and image
// entries from public domain works.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/notekeeper/internal/database"
	"github.com/mrlokans/notekeeper/internal/database/books"
	"github.com/mrlokans/notekeeper/internal/database/notes"
	"github.com/mrlokans/notekeeper/internal/entities"
	"github.com/mrlokans/notekeeper/internal/identifier"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoNote struct {
	title      string
	pageNumber int
	entries    []string
}

type demoBook struct {
	book  entities.Book
	notes []demoNote
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	store := database.NewStore(*dbPath)
	defer store.Close()

	// Rebuild from scratch if the file already had content.
	if err := store.ClearAll(); err != nil {
		log.Fatalf("Failed to clear existing data: %v", err)
	}

	booksRepo := books.NewRepository(store)
	notesRepo := notes.NewRepository(store)
	ids := identifier.New()

	for _, cfg := range demoBooks() {
		cfg.book.ID = ids.NewID()
		if err := booksRepo.UpsertBook(&cfg.book); err != nil {
			log.Printf("Failed to save book %s: %v", cfg.book.Title, err)
			continue
		}

		for _, dn := range cfg.notes {
			note := entities.Note{
				ID:         ids.NewID(),
				BookID:     cfg.book.ID,
				Title:      dn.title,
				PageNumber: dn.pageNumber,
			}
			for _, entry := range dn.entries {
				note.Images = append(note.Images, entities.Image{
					ID:          ids.NewID(),
					Description: entry,
				})
			}
			if err := notesRepo.UpsertNote(&note); err != nil {
				log.Printf("Failed to save note for %s: %v", cfg.book.Title, err)
			}
		}
		log.Printf("Saved: %s by %s (%d notes)", cfg.book.Title, cfg.book.Author, len(cfg.notes))
	}

	totalBooks, totalNotes, totalImages, err := store.GetStats()
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	log.Printf("Demo database generated: %d books, %d notes, %d images", totalBooks, totalNotes, totalImages)
}

func demoBooks() []demoBook {
	return []demoBook{
		{
			book: entities.Book{
				Title:       "Moby-Dick",
				Author:      "Herman Melville",
				Description: "The voyage of the whaling ship Pequod.",
			},
			notes: []demoNote{
				{
					title:      "Call me Ishmael",
					pageNumber: 1,
					entries: []string{
						"The famous opening line sets the wandering, confessional tone.",
						"Water and meditation are wedded for ever.",
					},
				},
				{
					pageNumber: 36,
					entries: []string{
						"Ahab nails the gold doubloon to the mast.",
					},
				},
			},
		},
		{
			book: entities.Book{
				Title:       "Meditations",
				Author:      "Marcus Aurelius",
				Description: "Private reflections of the Roman emperor.",
			},
			notes: []demoNote{
				{
					title:      "On mornings",
					pageNumber: 17,
					entries: []string{
						"At dawn, when you have trouble getting out of bed...",
					},
				},
				{
					title:      "On obstacles",
					pageNumber: 64,
					entries: []string{
						"The impediment to action advances action.",
						"What stands in the way becomes the way.",
					},
				},
			},
		},
		{
			book: entities.Book{
				Title:  "Frankenstein",
				Author: "Mary Shelley",
			},
			notes: []demoNote{
				{
					pageNumber: 43,
					entries: []string{
						"It was on a dreary night of November that I beheld the accomplishment of my toils.",
					},
				},
			},
		},
	}
}
