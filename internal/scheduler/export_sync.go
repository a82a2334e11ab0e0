// Package scheduler runs periodic markdown exports of the store.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/notekeeper/internal/exporters"
)

// ExportSyncScheduler manages periodic exports of the whole store.
type ExportSyncScheduler struct {
	exporter exporters.BookExporter
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
	syncing   bool
}

// NewExportSyncScheduler creates a scheduler that triggers the exporter on
// the given cron schedule.
func NewExportSyncScheduler(exporter exporters.BookExporter, schedule string) *ExportSyncScheduler {
	return &ExportSyncScheduler{
		exporter: exporter,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Calling Start on a running scheduler is a
// no-op.
func (s *ExportSyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runSync)
	if err != nil {
		return fmt.Errorf("failed to schedule export job with '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Export sync scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running export to finish. The
// wait happens outside the mutex: a running export needs it to clear its
// in-flight flag, so holding it here would never let the job complete.
func (s *ExportSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.cron.Remove(s.entryID)
	ctx := s.cron.Stop()
	s.isRunning = false
	s.mu.Unlock()

	<-ctx.Done()
	log.Printf("Export sync scheduler: stopped")
}

func (s *ExportSyncScheduler) runSync() {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		log.Printf("Export sync scheduler: previous export still running, skipping")
		return
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	result, err := s.exporter.Export()
	if err != nil {
		log.Printf("Export sync scheduler: export failed: %v", err)
		return
	}
	log.Printf("Export sync scheduler: exported %d books, %d notes, %d images (%d failed)",
		result.BooksProcessed, result.NotesProcessed, result.ImagesProcessed, result.BooksFailed)
}
