package traffic

import "skytraffic/internal/domain/airspace"

type Request struct{}

// Response carries the flights of one snapshot. Flights is never nil; it is
// empty when no snapshot arrived in time.
type Response struct {
	Flights   []airspace.Flight
	Tick      uint64
	Available bool
}
