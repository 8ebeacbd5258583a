package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Base struct {
	UUID      string `gorm:"primary_key" json:"uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (base *Base) BeforeCreate(db *gorm.DB) (err error) {
	if base.UUID == "" {
		base.UUID = uuid.NewString()
	}
	return
}

// Error is raised by model validation hooks. Validation distinguishes
// bad input from database failures in the dao error mapping.
type Error struct {
	Message    string
	Validation bool
}

func (e Error) Error() string {
	return e.Message
}
