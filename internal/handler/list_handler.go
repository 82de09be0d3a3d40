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

type ListRepository interface {
	Create(ctx context.Context, list *model.List) error
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.List, error)
}

type ListHandler struct {
	listRepo ListRepository
	log      *log.Logger
}

func NewListHandler(listRepo ListRepository, l *log.Logger) *ListHandler {
	return &ListHandler{listRepo: listRepo, log: loggerOrDiscard(l)}
}

type CreateListRequest struct {
	Name string `json:"name"`
}

type ListResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreatedListResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BoardID string `json:"boardId"`
}

// List godoc
// @Summary  List the lists of a board
// @Tags     Lists
// @Produce  json
// @Param    boardId  path      string  true  "Board ID"
// @Success  200      {array}   ListResponse
// @Failure  400      {object}  ErrorResponse
// @Router   /boards/{boardId}/lists [get]
func (h *ListHandler) List(c *gin.Context) {
	boardID, ok := pathID(c, "boardId")
	if !ok {
		return
	}

	lists, err := h.listRepo.ListByBoard(c.Request.Context(), boardID)
	if err != nil {
		readFailed(c, h.log, err)
		return
	}

	response := make([]ListResponse, len(lists))
	for i, l := range lists {
		response[i] = ListResponse{ID: l.ID.String(), Name: l.Name}
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary  Create a list on a board
// @Tags     Lists
// @Accept   json
// @Produce  json
// @Param    boardId  path      string  true  "Board ID"
// @Param    list     body      CreateListRequest  true  "New list"
// @Success  201      {object}  CreatedListResponse
// @Failure  422      {object}  ErrorResponse
// @Router   /boards/{boardId}/lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	rec, err := readRecord(c, "boardId", "boardId")
	if err != nil {
		validationFailed(c, err)
		return
	}
	input, err := validation.List(rec)
	if err != nil {
		validationFailed(c, err)
		return
	}

	list := &model.List{Name: input.Name, BoardID: input.BoardID}
	if err := h.listRepo.Create(c.Request.Context(), list); err != nil {
		writeFailed(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedListResponse{
		ID:      list.ID.String(),
		Name:    list.Name,
		BoardID: list.BoardID.String(),
	})
}
