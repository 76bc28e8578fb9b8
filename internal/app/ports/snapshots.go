package ports

import (
	"context"

	"skytraffic/internal/domain/airspace"
)

// SnapshotSource is the reader side of the snapshot exchange.
type SnapshotSource interface {
	Request(ctx context.Context) (airspace.Snapshot, bool)
}

// SnapshotPublisher is the engine side of the snapshot exchange. None of its
// methods wait on readers. Wanted delivers the same signal Pending polls.
type SnapshotPublisher interface {
	Pending() bool
	Wanted() <-chan struct{}
	Publish(snapshot airspace.Snapshot)
}

// SnapshotSink accepts snapshots for background processing. Offer never blocks;
// it reports false when the snapshot was discarded.
type SnapshotSink interface {
	Offer(snapshot airspace.Snapshot) bool
}
