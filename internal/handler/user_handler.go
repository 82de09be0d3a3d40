package handler

import (
	"context"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/validation"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
}

type UserHandler struct {
	repo UserRepository
	log  *log.Logger
}

func NewUserHandler(repo UserRepository, l *log.Logger) *UserHandler {
	return &UserHandler{repo: repo, log: loggerOrDiscard(l)}
}

// CreateUserRequest documents the POST /users body.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

// List godoc
// @Summary  List users
// @Tags     Users
// @Produce  json
// @Success  200  {array}   UserResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		readFailed(c, h.log, err)
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary  Create a user
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    user  body      CreateUserRequest  true  "New user"
// @Success  201   {object}  UserResponse
// @Failure  422   {object}  ErrorResponse
// @Router   /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	rec, err := readRecord(c, "", "")
	if err != nil {
		validationFailed(c, err)
		return
	}
	input, err := validation.User(rec)
	if err != nil {
		validationFailed(c, err)
		return
	}

	user := &model.User{Name: input.Name, Email: input.Email}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		writeFailed(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(*user))
}
