// Package ordering maintains the explicit relative order of sibling
// entities: notes within a book and images within a note. Both helpers
// operate on the caller's transaction handle, so position computation and
// the write that uses it are atomic — two concurrent appends can never
// observe the same maximum.
package ordering

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// Next returns the sort position for appending a child under the given
// parent: one past the current maximum, or 0 when the parent has no
// children yet.
func Next(tx *gorm.DB, table, parentColumn, parentID string) (int, error) {
	var max sql.NullInt64
	err := tx.Table(table).
		Select("MAX(sort_order)").
		Where(parentColumn+" = ?", parentID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// Resequence rewrites the positions of the given children to 0..n-1 in the
// order supplied, refreshing updated_at on every row it touches. Ids that do
// not belong to the parent are ignored. Gapped or sparse numbering is never
// produced.
func Resequence(tx *gorm.DB, table, parentColumn, parentID string, orderedIDs []string) error {
	now := time.Now()
	for position, id := range orderedIDs {
		err := tx.Table(table).
			Where("id = ? AND "+parentColumn+" = ?", id, parentID).
			Updates(map[string]any{"sort_order": position, "updated_at": now}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
