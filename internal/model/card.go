package model

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"not null"`
	Description *string
	DueDate     *time.Time `gorm:"type:date"`
	ListID      uuid.UUID  `gorm:"type:uuid;not null;index"`
}
