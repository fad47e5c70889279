package models

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Dni          string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"dni"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	DeviceID     string    `gorm:"type:varchar(255)" json:"device_id"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
