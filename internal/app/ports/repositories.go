package ports

import (
	"context"
	"time"

	"skytraffic/internal/domain/airspace"
)

// TrackRepository stores the positions of published snapshots. It is a
// write-only history; the simulation never reads it back.
type TrackRepository interface {
	AppendSnapshot(ctx context.Context, snapshot airspace.Snapshot, recordedAt time.Time) error
}
