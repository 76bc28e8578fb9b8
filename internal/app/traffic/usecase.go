package traffic

import (
	"context"
	"errors"

	"skytraffic/internal/app/ports"
	"skytraffic/internal/domain/airspace"
)

var ErrNotConfigured = errors.New("traffic source not configured")

type UseCase struct {
	Snapshots ports.SnapshotSource
	Metrics   ports.TrafficMetrics
}

// Execute returns the freshest snapshot the engine hands out. Running out of
// patience is not an error: the response is simply empty.
func (u UseCase) Execute(ctx context.Context, _ Request) (Response, error) {
	if u.Snapshots == nil {
		return Response{Flights: []airspace.Flight{}}, ErrNotConfigured
	}
	snap, ok := u.Snapshots.Request(ctx)
	if !ok {
		if u.Metrics != nil {
			u.Metrics.RecordTimeout()
		}
		return Response{Flights: []airspace.Flight{}}, nil
	}

	flights := snap.Flights
	if flights == nil {
		flights = []airspace.Flight{}
	}
	if u.Metrics != nil {
		u.Metrics.RecordServed(len(flights))
	}
	return Response{Flights: flights, Tick: snap.Tick, Available: true}, nil
}
