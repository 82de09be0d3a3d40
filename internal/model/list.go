package model

import (
	"github.com/google/uuid"
)

type List struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name    string    `gorm:"not null"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;index"`
}
