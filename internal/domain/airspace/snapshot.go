package airspace

import "errors"

// Snapshot is a point-in-time copy of every flight taken at a tick boundary.
// It shares no memory with the simulation and must not be modified once built.
type Snapshot struct {
	Tick    uint64
	Flights []Flight
}

func NewSnapshot(tick uint64, flights []Flight) Snapshot {
	out := make([]Flight, len(flights))
	copy(out, flights)
	return Snapshot{Tick: tick, Flights: out}
}

func (s Snapshot) Len() int {
	return len(s.Flights)
}

var ErrInvalidSnapshot = errors.New("invalid snapshot")

func (s Snapshot) Validate() error {
	for _, f := range s.Flights {
		if f.ID == "" || !f.Direction.Valid() {
			return ErrInvalidSnapshot
		}
	}
	return nil
}
