package handler

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	ListByList(ctx context.Context, listID uuid.UUID) ([]model.Card, error)
}

type CardHandler struct {
	cardRepo CardRepository
	log      *log.Logger
}

func NewCardHandler(cardRepo CardRepository, l *log.Logger) *CardHandler {
	return &CardHandler{cardRepo: cardRepo, log: loggerOrDiscard(l)}
}

// CreateCardRequest documents the POST /lists/{listId}/cards body. dueDate
// accepts YYYY-MM-DD or RFC 3339.
type CreateCardRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

type CardResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}

type CreatedCardResponse struct {
	CardResponse
	ListID string `json:"listId"`
}

func toCardResponse(card model.Card) CardResponse {
	response := CardResponse{
		ID:          card.ID.String(),
		Title:       card.Title,
		Description: card.Description,
	}
	if card.DueDate != nil {
		due := card.DueDate.Format(time.DateOnly)
		response.DueDate = &due
	}
	return response
}

// List godoc
// @Summary  List the cards of a list
// @Tags     Cards
// @Produce  json
// @Param    listId  path      string  true  "List ID"
// @Success  200     {array}   CardResponse
// @Failure  400     {object}  ErrorResponse
// @Router   /lists/{listId}/cards [get]
func (h *CardHandler) List(c *gin.Context) {
	listID, ok := pathID(c, "listId")
	if !ok {
		return
	}

	cards, err := h.cardRepo.ListByList(c.Request.Context(), listID)
	if err != nil {
		readFailed(c, h.log, err)
		return
	}

	response := make([]CardResponse, len(cards))
	for i, card := range cards {
		response[i] = toCardResponse(card)
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary  Create a card in a list
// @Tags     Cards
// @Accept   json
// @Produce  json
// @Param    listId  path      string  true  "List ID"
// @Param    card    body      CreateCardRequest  true  "New card"
// @Success  201     {object}  CreatedCardResponse
// @Failure  422     {object}  ErrorResponse
// @Router   /lists/{listId}/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	rec, err := readRecord(c, "listId", "listId")
	if err != nil {
		validationFailed(c, err)
		return
	}
	input, err := validation.Card(rec)
	if err != nil {
		validationFailed(c, err)
		return
	}

	card := &model.Card{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		ListID:      input.ListID,
	}
	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		writeFailed(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedCardResponse{
		CardResponse: toCardResponse(*card),
		ListID:       card.ListID.String(),
	})
}
