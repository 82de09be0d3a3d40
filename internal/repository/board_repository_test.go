package repository_test

import (
	"context"
	"regexp"
	"testing"

	"taskboard/internal/database"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_CreateWithAdmin_Commits(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(db)

	boardID, adminID := uuid.New(), uuid.New()
	board := &model.Board{Name: "Sprint"}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WithArgs("Sprint").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(boardID.String()))
	mock.ExpectQuery(`INSERT INTO "board_users"`).
		WithArgs(boardID.String(), adminID.String(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// Act
	err := boardRepo.CreateWithAdmin(context.Background(), board, adminID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, boardID, board.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateWithAdmin_UnknownAdminRollsBack(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(db)

	boardID, adminID := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(boardID.String()))
	mock.ExpectQuery(`INSERT INTO "board_users"`).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			ConstraintName: "board_users_user_id_fkey",
			Message:        "insert or update on table \"board_users\" violates foreign key constraint",
		})
	mock.ExpectRollback()

	// Act
	err := boardRepo.CreateWithAdmin(context.Background(), &model.Board{Name: "Sprint"}, adminID)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateWithAdmin_BoardInsertFails(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "boards"`).WillReturnError(&pgconn.PgError{Code: "23502"})
	mock.ExpectRollback()

	// Act
	err := boardRepo.CreateWithAdmin(context.Background(), &model.Board{Name: "Sprint"}, uuid.New())

	// Assert
	assert.ErrorIs(t, err, database.ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ListWithAdmins(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(db)

	boardID, adminID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT b.id, b.name, bu.user_id AS admin_user_id`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin_user_id"}).
			AddRow(boardID.String(), "Sprint", adminID.String()))

	// Act
	boards, err := boardRepo.ListWithAdmins(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []model.BoardWithAdmin{{ID: boardID, Name: "Sprint", AdminUserID: adminID}}, boards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ListWithAdmins_Empty(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(db)

	mock.ExpectQuery(`SELECT b.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "admin_user_id"}))

	// Act
	boards, err := boardRepo.ListWithAdmins(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, boards)
	assert.Empty(t, boards)
}
