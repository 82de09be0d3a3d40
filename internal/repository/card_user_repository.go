package repository

import (
	"context"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardUserRepository struct {
	db *database.DB
}

func NewCardUserRepository(db *database.DB) *CardUserRepository {
	return &CardUserRepository{db: db}
}

// Create attaches a user to a card
func (r *CardUserRepository) Create(ctx context.Context, ownership *model.CardUser) error {
	return r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Create(ownership).Error
	})
}

// ListByCard retrieves every user attached to a card
func (r *CardUserRepository) ListByCard(ctx context.Context, cardID uuid.UUID) ([]model.CardUser, error) {
	owners := []model.CardUser{}
	err := r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Select("user_id", "is_owner").Where("card_id = ?", cardID).Find(&owners).Error
	})
	return owners, err
}
