package repository

import (
	"context"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardUserRepository struct {
	db *database.DB
}

func NewBoardUserRepository(db *database.DB) *BoardUserRepository {
	return &BoardUserRepository{db: db}
}

// Create adds a user to a board. A second membership for the same pair is
// rejected by the board_users unique constraint.
func (r *BoardUserRepository) Create(ctx context.Context, membership *model.BoardUser) error {
	return r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Create(membership).Error
	})
}

// ListByBoard returns the memberships of a board
func (r *BoardUserRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardUser, error) {
	memberships := []model.BoardUser{}
	err := r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Where("board_id = ?", boardID).Find(&memberships).Error
	})
	return memberships, err
}
