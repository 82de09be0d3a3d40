package model

import (
	"github.com/google/uuid"
)

// BoardUser is the membership of a user in a board.
type BoardUser struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:board_users_board_id_user_id_key"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:board_users_board_id_user_id_key"`
	IsAdmin bool      `gorm:"not null"`
}
