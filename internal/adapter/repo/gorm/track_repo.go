package gormrepo

import (
	"context"
	"time"

	"skytraffic/internal/adapter/repo/gorm/model"
	"skytraffic/internal/domain/airspace"

	"gorm.io/gorm"
)

const trackBatchSize = 200

type TrackRepo struct {
	db *gorm.DB
}

func NewTrackRepo(db *gorm.DB) TrackRepo {
	return TrackRepo{db: db}
}

func (r TrackRepo) AppendSnapshot(ctx context.Context, snapshot airspace.Snapshot, recordedAt time.Time) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if snapshot.Len() == 0 {
		return nil
	}
	rows := toTrackRows(snapshot, recordedAt)
	return r.db.WithContext(ctx).CreateInBatches(&rows, trackBatchSize).Error
}

func toTrackRows(snapshot airspace.Snapshot, recordedAt time.Time) []model.FlightTrack {
	rows := make([]model.FlightTrack, 0, snapshot.Len())
	for _, f := range snapshot.Flights {
		rows = append(rows, model.FlightTrack{
			Tick:       int64(snapshot.Tick),
			FlightID:   f.ID,
			X:          int32(f.X),
			Y:          int32(f.Y),
			Direction:  string(f.Direction),
			RecordedAt: recordedAt,
		})
	}
	return rows
}
