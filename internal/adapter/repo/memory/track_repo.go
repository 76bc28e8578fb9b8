package memory

import (
	"context"
	"time"

	"skytraffic/internal/domain/airspace"
)

type TrackRepo struct {
	store *Store
}

func NewTrackRepo(store *Store) TrackRepo {
	return TrackRepo{store: store}
}

func (r TrackRepo) AppendSnapshot(_ context.Context, snapshot airspace.Snapshot, _ time.Time) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	copied := airspace.NewSnapshot(snapshot.Tick, snapshot.Flights)

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if len(r.store.snapshots) == r.store.capacity {
		r.store.snapshots = append(r.store.snapshots[:0], r.store.snapshots[1:]...)
	}
	r.store.snapshots = append(r.store.snapshots, copied)
	return nil
}
