package repository

import (
	"context"

	"taskboard/internal/database"
	"taskboard/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and fills in its generated ID.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Create(user).Error
	})
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.Run(ctx, func(db *gorm.DB) error {
		return db.Select("id", "name", "email").Find(&users).Error
	})
	return users, err
}
