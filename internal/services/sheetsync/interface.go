package sheetsync

import (
	"context"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
)

//go:generate mockgen -destination=mock/mock.go -package=mocksheetsync -source=interface.go

// Recordkeeper mirrors the full roster to an external record-keeper. A
// push always carries the complete dataset, so a dropped push is made
// whole by the next one.
type Recordkeeper interface {
	ReplaceAll(ctx context.Context, entries []*entities.RosterEntry) error
}

// RosterSource snapshots the rows to push
type RosterSource interface {
	Roster(ctx context.Context) ([]*entities.RosterEntry, error)
}
