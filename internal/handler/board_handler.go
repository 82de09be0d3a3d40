package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardRepository interface {
	CreateWithAdmin(ctx context.Context, board *model.Board, adminUserID uuid.UUID) error
	ListWithAdmins(ctx context.Context) ([]model.BoardWithAdmin, error)
}

type BoardHandler struct {
	boardRepo BoardRepository
	log       *log.Logger
}

func NewBoardHandler(boardRepo BoardRepository, l *log.Logger) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		log:       loggerOrDiscard(l),
	}
}

// CreateBoardRequest documents the POST /boards body.
type CreateBoardRequest struct {
	Name        string `json:"name"`
	AdminUserID string `json:"adminUserId"`
}

type BoardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AdminUserID string `json:"adminUserId"`
}

// List godoc
// @Summary  List boards with their admins
// @Tags     Boards
// @Produce  json
// @Success  200  {array}   BoardResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boardRepo.ListWithAdmins(c.Request.Context())
	if err != nil {
		readFailed(c, h.log, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i, board := range boards {
		response[i] = BoardResponse{
			ID:          board.ID.String(),
			Name:        board.Name,
			AdminUserID: board.AdminUserID.String(),
		}
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary      Create a board
// @Description  Inserts the board and its admin membership in one transaction.
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Param        board  body      CreateBoardRequest  true  "New board"
// @Success      201    {object}  BoardResponse
// @Failure      422    {object}  ErrorResponse
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	rec, err := readRecord(c, "", "")
	if err != nil {
		validationFailed(c, err)
		return
	}
	input, err := validation.Board(rec)
	if err != nil {
		validationFailed(c, err)
		return
	}

	board := &model.Board{Name: input.Name}
	if err := h.boardRepo.CreateWithAdmin(c.Request.Context(), board, input.AdminUserID); err != nil {
		writeFailed(c, h.log, err)
		return
	}

	h.log.Info("board created", "board", board.ID, "admin", input.AdminUserID)
	c.JSON(http.StatusCreated, BoardResponse{
		ID:          board.ID.String(),
		Name:        board.Name,
		AdminUserID: input.AdminUserID.String(),
	})
}
