package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/notekeeper/internal/entities"
)

// columnMigration describes one additive schema change: a column that later
// application versions added to an existing table. Columns are only ever
// added, never dropped, renamed or narrowed.
type columnMigration struct {
	model    any
	table    string
	column   string
	backfill string // statement run once, right after the column appears
}

// orderBackfill assigns 0..n-1 per parent in creation order, so rows written
// before the ordering column existed keep the order they were listed in.
// The id tie-break makes the ranking total when created_at collides.
func orderBackfill(table, parentColumn string) string {
	return fmt.Sprintf(`UPDATE %[1]s SET sort_order = (
		SELECT rn FROM (
			SELECT id, ROW_NUMBER() OVER (PARTITION BY %[2]s ORDER BY created_at ASC, id ASC) - 1 AS rn
			FROM %[1]s
		) ranked
		WHERE ranked.id = %[1]s.id
	)`, table, parentColumn)
}

var columnMigrations = []columnMigration{
	{model: &entities.Book{}, table: "books", column: "description"},
	{model: &entities.Book{}, table: "books", column: "cover_reference"},
	{model: &entities.Note{}, table: "notes", column: "sort_order",
		backfill: orderBackfill("notes", "book_id")},
	{model: &entities.Image{}, table: "images", column: "sort_order",
		backfill: orderBackfill("images", "note_id")},
}

// Lookup indexes a current-version store must carry. Created on demand for
// stores whose tables predate them; fresh tables get them from the entity
// tags.
var indexMigrations = []struct {
	model any
	table string
	field string
}{
	{model: &entities.Note{}, table: "notes", field: "BookID"},
	{model: &entities.Note{}, table: "notes", field: "PageNumber"},
	{model: &entities.Image{}, table: "images", field: "NoteID"},
}

// EnsureSchema brings the store to the current schema, whatever version of
// the application created it. It is idempotent: base tables are created if
// absent, and each additive column is applied (and backfilled) exactly once.
// Only a failure to create the base tables is fatal, returned as
// ErrInitialization. Additive steps run one statement at a time and a
// failed step is logged and skipped, so a single bad ALTER never blocks
// startup — the application keeps running with degraded behavior.
func EnsureSchema(db *gorm.DB) error {
	migrator := db.Migrator()

	models := []any{&entities.Book{}, &entities.Note{}, &entities.Image{}}
	var missing []any
	for _, model := range models {
		if !migrator.HasTable(model) {
			missing = append(missing, model)
		}
	}
	if len(missing) > 0 {
		if err := db.AutoMigrate(missing...); err != nil {
			return fmt.Errorf("%w: could not create base tables: %v", ErrInitialization, err)
		}
	}

	// Tables created by an older version evolve one column at a time.
	// Backfills run only when the column was genuinely absent, never on a
	// later start.
	for _, m := range columnMigrations {
		if migrator.HasColumn(m.model, m.column) {
			continue
		}
		if err := migrator.AddColumn(m.model, m.column); err != nil {
			log.Printf("schema: skipping column %s.%s: %v", m.table, m.column, err)
			continue
		}
		if m.backfill == "" {
			continue
		}
		if err := db.Exec(m.backfill).Error; err != nil {
			log.Printf("schema: backfill of %s.%s failed, rows keep default values: %v",
				m.table, m.column, err)
			continue
		}
		log.Printf("schema: added and backfilled %s.%s", m.table, m.column)
	}

	for _, idx := range indexMigrations {
		if migrator.HasIndex(idx.model, idx.field) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.field); err != nil {
			log.Printf("schema: skipping index on %s.%s: %v", idx.table, idx.field, err)
		}
	}

	return nil
}
