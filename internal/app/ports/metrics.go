package ports

type TrafficMetrics interface {
	RecordServed(flights int)
	RecordTimeout()
	RecordDropped()
}

type EngineMetrics interface {
	RecordTick()
	RecordPublished()
}

type ArchiveMetrics interface {
	RecordArchived()
	RecordArchiveDropped()
	RecordArchiveFailure()
}
