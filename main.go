package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/notekeeper/internal/cli"
	"github.com/mrlokans/notekeeper/internal/config"
	"github.com/mrlokans/notekeeper/internal/database"
	"github.com/mrlokans/notekeeper/internal/database/books"
	"github.com/mrlokans/notekeeper/internal/database/notes"
	"github.com/mrlokans/notekeeper/internal/exporters"
	"github.com/mrlokans/notekeeper/internal/scheduler"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "stats":
		cmd := cli.NewStatsCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "export":
		cmd := cli.NewExportCommand()
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "sync":
		cfg := config.NewConfig()
		runSync(cfg)

	case "version":
		fmt.Printf("notekeeper %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runSync keeps exporting on the configured cron schedule until interrupted.
func runSync(cfg *config.Config) {
	if !cfg.ExportSync.Enabled {
		log.Printf("Export sync is disabled. Set EXPORT_SYNC_ENABLED=true to enable.")
		return
	}

	store := database.NewStore(cfg.Database.Path)
	defer store.Close()

	booksRepo := books.NewRepository(store)
	notesRepo := notes.NewRepository(store)
	exporter := exporters.NewMarkdownExporter(booksRepo, notesRepo, cfg.Export.Dir)

	sched := scheduler.NewExportSyncScheduler(exporter, cfg.ExportSync.Schedule)
	if err := sched.Start(); err != nil {
		log.Fatalf("Could not start export sync: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down...")
	sched.Stop()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  stats     Print book, note and image counts\n")
	fmt.Fprintf(os.Stderr, "  export    Export all books to markdown files\n")
	fmt.Fprintf(os.Stderr, "  sync      Export periodically on a cron schedule (env-configured)\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
