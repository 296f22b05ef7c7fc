package sheetsync

import (
	"context"
	"log"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
)

// LogKeeper stands in for the spreadsheet when none is configured. The
// scheduler wiring stays identical; pushes just log their size.
type LogKeeper struct{}

// ReplaceAll logs the snapshot size and discards it
func (LogKeeper) ReplaceAll(_ context.Context, entries []*entities.RosterEntry) error {
	log.Printf("sheetsync: no spreadsheet configured, dropping %d roster entries", len(entries))
	return nil
}
