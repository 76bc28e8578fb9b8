package httpadapter

import (
	"skytraffic/internal/domain/airspace"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const contentTypeJSON = "application/json"

var emptyPayload = []byte("[]")

var marshalFlights = func(flights []airspace.Flight) ([]byte, error) {
	return sonic.Marshal(flights)
}

// encodeFlights renders flights as a JSON array. It falls back to an empty
// array rather than failing the response.
func encodeFlights(flights []airspace.Flight) []byte {
	if len(flights) == 0 {
		return emptyPayload
	}
	b, err := marshalFlights(flights)
	if err != nil {
		hlog.Errorf("http: encode %d flights: %v", len(flights), err)
		return emptyPayload
	}
	return b
}
