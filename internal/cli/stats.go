package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/notekeeper/internal/config"
	"github.com/mrlokans/notekeeper/internal/database"
)

type StatsCommand struct {
	DatabasePath string
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print book, note and image counts for a database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	store := database.NewStore(cmd.DatabasePath)
	defer store.Close()

	books, notes, images, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Database: %s\n", cmd.DatabasePath)
	fmt.Printf("Books:  %d\n", books)
	fmt.Printf("Notes:  %d\n", notes)
	fmt.Printf("Images: %d\n", images)
	return nil
}
