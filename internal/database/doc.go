// Package database provides the persistence core of the application.
//
// # Architecture
//
// The layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Store lifecycle, stats, bulk clear
//	├── schema.go        # Idempotent schema creation and additive migrations
//	├── errors.go        # Error taxonomy
//	├── ordering/        # Sibling sort-position helpers
//	├── books/           # Book CRUD
//	└── notes/           # Note and image CRUD, reordering
//
// # Usage
//
//	store := database.NewStore("./notekeeper.db")
//	defer store.Close()
//
//	booksRepo := books.NewRepository(store)
//	notesRepo := notes.NewRepository(store)
//
// The store opens lazily: the first repository operation opens the SQLite
// file and runs the schema migrations. Multi-statement mutations (note
// upserts, cascading deletes, reorders, bulk clear) run inside a single
// transaction; on failure every statement is rolled back and the original
// error is returned unchanged. Read operations report absence as a nil
// entity, never as an error.
package database
