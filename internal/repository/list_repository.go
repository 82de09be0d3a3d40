package repository

import (
	"context"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *database.DB
}

func NewListRepository(db *database.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Create(list).Error
	})
}

func (r *ListRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	lists := []model.List{}
	err := r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Select("id", "name", "board_id").Where("board_id = ?", boardID).Find(&lists).Error
	})
	return lists, err
}
