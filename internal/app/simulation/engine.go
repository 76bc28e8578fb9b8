package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"skytraffic/internal/app/ports"
	"skytraffic/internal/domain/airspace"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

type Config struct {
	Grid         airspace.Grid
	MinFlights   int
	MaxFlights   int
	TickInterval time.Duration
	// ArchiveEvery offers a snapshot to the archive sink every n ticks; 0 disables it.
	ArchiveEvery int
	Rand         *rand.Rand
	TraceMap     bool
}

func DefaultConfig() Config {
	return Config{
		Grid:         airspace.Grid{Width: 20, Height: 10},
		MinFlights:   10,
		MaxFlights:   10,
		TickInterval: 900 * time.Millisecond,
	}
}

type Deps struct {
	Exchange ports.SnapshotPublisher
	Archive  ports.SnapshotSink
	Metrics  ports.EngineMetrics
}

// Engine owns the live flight collection. Everything except New must run on
// a single goroutine; readers only ever see copies handed out through the
// exchange.
type Engine struct {
	cfg      Config
	exchange ports.SnapshotPublisher
	archive  ports.SnapshotSink
	metrics  ports.EngineMetrics

	flights []airspace.Flight
	tick    uint64
}

// New builds the fleet. A zero Grid or TickInterval takes the DefaultConfig
// value; the flight range is used as given, so 0..0 is an empty airspace.
func New(cfg Config, deps Deps) (*Engine, error) {
	def := DefaultConfig()
	if cfg.Grid == (airspace.Grid{}) {
		cfg.Grid = def.Grid
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = def.TickInterval
	}
	if cfg.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.MinFlights < 0 || cfg.MaxFlights < cfg.MinFlights {
		return nil, fmt.Errorf("%w: flight count range [%d, %d]", ErrInvalidConfig, cfg.MinFlights, cfg.MaxFlights)
	}
	if cfg.ArchiveEvery < 0 {
		return nil, fmt.Errorf("%w: archive interval %d", ErrInvalidConfig, cfg.ArchiveEvery)
	}
	if deps.Exchange == nil {
		return nil, fmt.Errorf("%w: missing exchange", ErrInvalidConfig)
	}

	return &Engine{
		cfg:      cfg,
		exchange: deps.Exchange,
		archive:  deps.Archive,
		metrics:  deps.Metrics,
		flights:  airspace.RandomFleet(cfg.Rand, cfg.Grid, cfg.MinFlights, cfg.MaxFlights),
	}, nil
}

func (e *Engine) Grid() airspace.Grid {
	return e.cfg.Grid
}

func (e *Engine) Count() int {
	return len(e.flights)
}

func (e *Engine) Tick() uint64 {
	return e.tick
}

func (e *Engine) Snapshot() airspace.Snapshot {
	return airspace.NewSnapshot(e.tick, e.flights)
}

// Advance moves every flight one cell. Flights never read each other's state,
// so order does not matter.
func (e *Engine) Advance() {
	for i := range e.flights {
		e.flights[i].Advance(e.cfg.Grid)
	}
	e.tick++
	if e.metrics != nil {
		e.metrics.RecordTick()
	}
	if e.cfg.TraceMap {
		hlog.Debugf("simulation: tick %d\n%s", e.tick, airspace.Render(e.cfg.Grid, e.flights))
	}
}

// ServePending publishes a snapshot if a reader asked for one. It returns
// whether something was published.
func (e *Engine) ServePending() bool {
	if !e.exchange.Pending() {
		return false
	}
	e.publish()
	return true
}

func (e *Engine) publish() {
	e.exchange.Publish(e.Snapshot())
	if e.metrics != nil {
		e.metrics.RecordPublished()
	}
}

// Run drives the simulation until ctx ends. Between ticks it also wakes on
// reader intent so a request does not have to wait for the next tick to be
// served.
func (e *Engine) Run(ctx context.Context) error {
	hlog.Infof("simulation: %d flights on %dx%d grid, tick every %s",
		len(e.flights), e.cfg.Grid.Width, e.cfg.Grid.Height, e.cfg.TickInterval)

	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		e.ServePending()
		e.Advance()
		e.offerArchive()

	wait:
		for {
			select {
			case <-ctx.Done():
				hlog.Infof("simulation: stopped at tick %d", e.tick)
				return nil
			case <-e.exchange.Wanted():
				e.publish()
			case <-ticker.C:
				break wait
			}
		}
	}
}

func (e *Engine) offerArchive() {
	if e.archive == nil || e.cfg.ArchiveEvery == 0 || e.tick%uint64(e.cfg.ArchiveEvery) != 0 {
		return
	}
	if !e.archive.Offer(e.Snapshot()) {
		hlog.Debugf("simulation: archive queue full, skipped tick %d", e.tick)
	}
}
