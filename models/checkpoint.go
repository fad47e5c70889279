package models

import "time"

// Checkpoint is a registered marking point. The QR handed to employees
// embeds the same coordinates; this registry exists for administration and
// the checkpoint listing endpoint.
type Checkpoint struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(255);uniqueIndex" json:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	Latitude  float64   `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(11,8)" json:"longitude"`
	QRCode    string    `gorm:"type:varchar(512)" json:"qr_code"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Checkpoint) TableName() string {
	return "checkpoints"
}
