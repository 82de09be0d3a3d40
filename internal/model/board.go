package model

import (
	"github.com/google/uuid"
)

type Board struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"not null"`
}

// BoardWithAdmin is a board joined with one of its admin memberships.
type BoardWithAdmin struct {
	ID          uuid.UUID
	Name        string
	AdminUserID uuid.UUID
}
