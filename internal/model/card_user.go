package model

import (
	"github.com/google/uuid"
)

// CardUser records that a user is attached to a card, optionally as its owner.
type CardUser struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CardID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:card_users_card_id_user_id_key"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:card_users_card_id_user_id_key"`
	IsOwner bool      `gorm:"not null"`
}
