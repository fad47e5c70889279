package models

import "time"

// AttendanceRecord is the single row each user gets per calendar day. The
// composite unique index is what keeps a lost first-entry race from ever
// producing a second row; time-of-day slots stay NULL until the matching
// event is accepted.
type AttendanceRecord struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	FullName    string  `gorm:"type:varchar(255);not null" json:"fullname"`
	UserEmail   string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_email_date,priority:1" json:"email"`
	Dni         string  `gorm:"type:varchar(20);not null" json:"dni"`
	DeviceID    string  `gorm:"type:varchar(255)" json:"device_id"`
	MarkingDate string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_email_date,priority:2;index" json:"marking_date"`
	EntryTime   *string `gorm:"type:time" json:"entry_time"`
	BreakStart  *string `gorm:"type:time" json:"break_start_time"`
	BreakEnd    *string `gorm:"type:time" json:"break_end_time"`
	ExitTime    *string `gorm:"type:time" json:"exit_time"`
	Latitude    float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   float64 `gorm:"type:decimal(11,8)" json:"longitude"`
	// Location is the "lat, lng" string of the last accepted event. Each
	// event records where it happened, not only where the day began.
	Location  string    `gorm:"type:varchar(255)" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
