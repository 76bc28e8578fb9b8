package model

import "time"

const TableNameFlightTrack = "flight_tracks"

type FlightTrack struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true"`
	Tick       int64     `gorm:"column:tick;not null"`
	FlightID   string    `gorm:"column:flight_id;not null"`
	X          int32     `gorm:"column:x;not null"`
	Y          int32     `gorm:"column:y;not null"`
	Direction  string    `gorm:"column:direction;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
}

func (*FlightTrack) TableName() string {
	return TableNameFlightTrack
}
