package model

import (
	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name  string    `gorm:"not null"`
	Email string    `gorm:"uniqueIndex;not null"`
}
