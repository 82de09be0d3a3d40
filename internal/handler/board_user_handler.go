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

type BoardUserRepository interface {
	Create(ctx context.Context, membership *model.BoardUser) error
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardUser, error)
}

// BoardUserHandler manages board memberships.
type BoardUserHandler struct {
	repo BoardUserRepository
	log  *log.Logger
}

func NewBoardUserHandler(repo BoardUserRepository, l *log.Logger) *BoardUserHandler {
	return &BoardUserHandler{repo: repo, log: loggerOrDiscard(l)}
}

type CreateBoardUserRequest struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

type BoardUserResponse struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"isAdmin"`
	UserID  string `json:"userId"`
}

type CreatedBoardUserResponse struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// List godoc
// @Summary  List board members
// @Tags     Board Users
// @Produce  json
// @Param    boardId  path      string  true  "Board ID"
// @Success  200      {array}   BoardUserResponse
// @Failure  400      {object}  ErrorResponse
// @Router   /boards/{boardId}/users [get]
func (h *BoardUserHandler) List(c *gin.Context) {
	boardID, ok := pathID(c, "boardId")
	if !ok {
		return
	}

	memberships, err := h.repo.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		readFailed(c, h.log, err)
		return
	}

	response := make([]BoardUserResponse, len(memberships))
	for i, m := range memberships {
		response[i] = BoardUserResponse{ID: m.ID.String(), IsAdmin: m.IsAdmin, UserID: m.UserID.String()}
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary  Add a user to a board
// @Tags     Board Users
// @Accept   json
// @Produce  json
// @Param    boardId     path      string  true  "Board ID"
// @Param    membership  body      CreateBoardUserRequest  true  "New membership"
// @Success  201         {object}  CreatedBoardUserResponse
// @Failure  422         {object}  ErrorResponse
// @Router   /boards/{boardId}/users [post]
func (h *BoardUserHandler) Create(c *gin.Context) {
	rec, err := readRecord(c, "boardId", "boardId")
	if err != nil {
		validationFailed(c, err)
		return
	}
	input, err := validation.BoardUser(rec)
	if err != nil {
		validationFailed(c, err)
		return
	}

	membership := &model.BoardUser{BoardID: input.BoardID, UserID: input.UserID, IsAdmin: input.IsAdmin}
	if err := h.repo.Create(c.Request.Context(), membership); err != nil {
		writeFailed(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedBoardUserResponse{
		ID:      membership.ID.String(),
		BoardID: membership.BoardID.String(),
		UserID:  membership.UserID.String(),
		IsAdmin: membership.IsAdmin,
	})
}
