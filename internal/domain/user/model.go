package user

import "time"

// User mirrors the identity carried by a verified bearer token.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Email     *string   `gorm:"type:text"`
	Name      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
