package repository

import (
	"context"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *database.DB
}

func NewCardRepository(db *database.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create adds a new card to the database
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Create(card).Error
	})
}

// ListByList retrieves all cards in a specific list
func (r *CardRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]model.Card, error) {
	cards := []model.Card{}
	err := r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Where("list_id = ?", listID).Find(&cards).Error
	})
	return cards, err
}
