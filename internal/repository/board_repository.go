package repository

import (
	"context"
	"fmt"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardRepository struct {
	db *database.DB
}

func NewBoardRepository(db *database.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

const listBoardsWithAdminsQuery = `SELECT b.id, b.name, bu.user_id AS admin_user_id
FROM boards b
JOIN board_users bu ON bu.board_id = b.id
WHERE bu.is_admin = ?`

// CreateWithAdmin inserts board and an admin membership for adminUserID in
// one transaction. If either insert fails neither row survives.
func (r *BoardRepository) CreateWithAdmin(ctx context.Context, board *model.Board, adminUserID uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return fmt.Errorf("insert board: %w", err)
		}

		membership := &model.BoardUser{
			BoardID: board.ID,
			UserID:  adminUserID,
			IsAdmin: true,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("insert admin membership: %w", err)
		}
		return nil
	})
}

// ListWithAdmins returns one row per (board, admin) pair.
func (r *BoardRepository) ListWithAdmins(ctx context.Context) ([]model.BoardWithAdmin, error) {
	boards := []model.BoardWithAdmin{}
	err := r.db.Query(ctx, &boards, listBoardsWithAdminsQuery, true)
	return boards, err
}
