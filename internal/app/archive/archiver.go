package archive

import (
	"context"
	"time"

	"skytraffic/internal/app/ports"
	"skytraffic/internal/domain/airspace"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	DefaultQueueDepth   = 64
	DefaultWriteTimeout = 5 * time.Second
)

type Config struct {
	QueueDepth   int
	WriteTimeout time.Duration
	Now          func() time.Time
}

// Archiver moves snapshots from the simulation loop to a TrackRepository on
// its own goroutine. Offer never blocks; a full queue drops the snapshot.
type Archiver struct {
	repo    ports.TrackRepository
	metrics ports.ArchiveMetrics
	queue   chan airspace.Snapshot
	cfg     Config
}

func New(repo ports.TrackRepository, metrics ports.ArchiveMetrics, cfg Config) *Archiver {
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Archiver{
		repo:    repo,
		metrics: metrics,
		queue:   make(chan airspace.Snapshot, cfg.QueueDepth),
		cfg:     cfg,
	}
}

func (a *Archiver) Offer(snapshot airspace.Snapshot) bool {
	select {
	case a.queue <- snapshot:
		return true
	default:
		if a.metrics != nil {
			a.metrics.RecordArchiveDropped()
		}
		return false
	}
}

// Run writes queued snapshots until ctx ends, then flushes what is left with
// a fresh deadline. Write failures are logged and counted, never fatal.
func (a *Archiver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			a.drain()
			return nil
		case snap := <-a.queue:
			a.write(ctx, snap)
		}
	}
}

func (a *Archiver) drain() {
	for {
		select {
		case snap := <-a.queue:
			a.write(context.Background(), snap)
		default:
			return
		}
	}
}

func (a *Archiver) write(ctx context.Context, snap airspace.Snapshot) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.WriteTimeout)
	defer cancel()

	if err := a.repo.AppendSnapshot(wctx, snap, a.cfg.Now()); err != nil {
		hlog.Warnf("archive: tick %d not stored: %v", snap.Tick, err)
		if a.metrics != nil {
			a.metrics.RecordArchiveFailure()
		}
		return
	}
	if a.metrics != nil {
		a.metrics.RecordArchived()
	}
}
