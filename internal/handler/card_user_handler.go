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

type CardUserRepository interface {
	Create(ctx context.Context, ownership *model.CardUser) error
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]model.CardUser, error)
}

// CardUserHandler manages which users are attached to a card.
type CardUserHandler struct {
	repo CardUserRepository
	log  *log.Logger
}

func NewCardUserHandler(repo CardUserRepository, l *log.Logger) *CardUserHandler {
	return &CardUserHandler{repo: repo, log: loggerOrDiscard(l)}
}

type CreateCardUserRequest struct {
	UserID  string `json:"userId"`
	IsOwner bool   `json:"isOwner"`
}

type CardUserResponse struct {
	UserID  string `json:"userId"`
	IsOwner bool   `json:"isOwner"`
}

type CreatedCardUserResponse struct {
	ID      string `json:"id"`
	CardID  string `json:"cardId"`
	UserID  string `json:"userId"`
	IsOwner bool   `json:"isOwner"`
}

// List godoc
// @Summary  List users attached to a card
// @Tags     Card Users
// @Produce  json
// @Param    cardId  path      string  true  "Card ID"
// @Success  200     {array}   CardUserResponse
// @Failure  400     {object}  ErrorResponse
// @Router   /cards/{cardId}/users [get]
func (h *CardUserHandler) List(c *gin.Context) {
	cardID, ok := pathID(c, "cardId")
	if !ok {
		return
	}

	owners, err := h.repo.ListByCard(c.Request.Context(), cardID)
	if err != nil {
		readFailed(c, h.log, err)
		return
	}

	response := make([]CardUserResponse, len(owners))
	for i, o := range owners {
		response[i] = CardUserResponse{UserID: o.UserID.String(), IsOwner: o.IsOwner}
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary  Attach a user to a card
// @Tags     Card Users
// @Accept   json
// @Produce  json
// @Param    cardId     path      string  true  "Card ID"
// @Param    ownership  body      CreateCardUserRequest  true  "New ownership"
// @Success  201        {object}  CreatedCardUserResponse
// @Failure  422        {object}  ErrorResponse
// @Router   /cards/{cardId}/users [post]
func (h *CardUserHandler) Create(c *gin.Context) {
	rec, err := readRecord(c, "cardId", "cardId")
	if err != nil {
		validationFailed(c, err)
		return
	}
	input, err := validation.CardUser(rec)
	if err != nil {
		validationFailed(c, err)
		return
	}

	ownership := &model.CardUser{CardID: input.CardID, UserID: input.UserID, IsOwner: input.IsOwner}
	if err := h.repo.Create(c.Request.Context(), ownership); err != nil {
		writeFailed(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedCardUserResponse{
		ID:      ownership.ID.String(),
		CardID:  ownership.CardID.String(),
		UserID:  ownership.UserID.String(),
		IsOwner: ownership.IsOwner,
	})
}
