package inmemory

import "sync"

type Snapshot struct {
	Ticks           uint64 `json:"ticks"`
	Published       uint64 `json:"published"`
	RequestTotal    uint64 `json:"request_total"`
	RequestServed   uint64 `json:"request_served"`
	RequestTimeout  uint64 `json:"request_timeout"`
	RequestDropped  uint64 `json:"request_dropped"`
	FlightsServed   uint64 `json:"flights_served"`
	Archived        uint64 `json:"archived"`
	ArchiveDropped  uint64 `json:"archive_dropped"`
	ArchiveFailures uint64 `json:"archive_failures"`
}

type Recorder struct {
	mu              sync.Mutex
	ticks           uint64
	published       uint64
	served          uint64
	timeout         uint64
	dropped         uint64
	flightsServed   uint64
	archived        uint64
	archiveDropped  uint64
	archiveFailures uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordTick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}

func (r *Recorder) RecordPublished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published++
}

func (r *Recorder) RecordServed(flights int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.served++
	if flights > 0 {
		r.flightsServed += uint64(flights)
	}
}

func (r *Recorder) RecordTimeout() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timeout++
}

func (r *Recorder) RecordDropped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped++
}

func (r *Recorder) RecordArchived() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.archived++
}

func (r *Recorder) RecordArchiveDropped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.archiveDropped++
}

func (r *Recorder) RecordArchiveFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.archiveFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Ticks:           r.ticks,
		Published:       r.published,
		RequestTotal:    r.served + r.timeout + r.dropped,
		RequestServed:   r.served,
		RequestTimeout:  r.timeout,
		RequestDropped:  r.dropped,
		FlightsServed:   r.flightsServed,
		Archived:        r.archived,
		ArchiveDropped:  r.archiveDropped,
		ArchiveFailures: r.archiveFailures,
	}
}
