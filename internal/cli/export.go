package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/notekeeper/internal/config"
	"github.com/mrlokans/notekeeper/internal/database"
	"github.com/mrlokans/notekeeper/internal/database/books"
	"github.com/mrlokans/notekeeper/internal/database/notes"
	"github.com/mrlokans/notekeeper/internal/exporters"
)

type ExportCommand struct {
	DatabasePath string
	OutputDir    string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.OutputDir, "out", config.DefaultExportDir, "Directory to write markdown files to")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export all books with their notes and images to markdown files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -out ./my-notes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -db ./notekeeper.db -out ./my-notes\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	store := database.NewStore(cmd.DatabasePath)
	defer store.Close()

	booksRepo := books.NewRepository(store)
	notesRepo := notes.NewRepository(store)
	exporter := exporters.NewMarkdownExporter(booksRepo, notesRepo, cmd.OutputDir)

	result, err := exporter.Export()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("\n=== Export Results ===\n")
	fmt.Printf("Books processed: %d\n", result.BooksProcessed)
	fmt.Printf("Notes processed: %d\n", result.NotesProcessed)
	fmt.Printf("Images processed: %d\n", result.ImagesProcessed)
	fmt.Printf("Books failed: %d\n", result.BooksFailed)
	return nil
}
