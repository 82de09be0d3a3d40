package validation

import (
	"time"

	"github.com/google/uuid"
)

type NewUser struct {
	Name  string
	Email string
}

type NewBoard struct {
	Name        string
	AdminUserID uuid.UUID
}

type NewBoardUser struct {
	BoardID uuid.UUID
	UserID  uuid.UUID
	IsAdmin bool
}

type NewCardUser struct {
	CardID  uuid.UUID
	UserID  uuid.UUID
	IsOwner bool
}

type NewList struct {
	Name    string
	BoardID uuid.UUID
}

type NewCard struct {
	Title       string
	Description *string
	DueDate     *time.Time
	ListID      uuid.UUID
}

var (
	userFields = []Field{
		{Name: "name", Kind: KindString, Required: true, Rules: "notblank"},
		{Name: "email", Kind: KindString, Required: true, Rules: "notblank,email"},
	}
	boardFields = []Field{
		{Name: "name", Kind: KindString, Required: true, Rules: "notblank"},
		{Name: "adminUserId", Kind: KindUUID, Required: true},
	}
	boardUserFields = []Field{
		{Name: "boardId", Kind: KindUUID, Required: true},
		{Name: "userId", Kind: KindUUID, Required: true},
		{Name: "isAdmin", Kind: KindBool, Required: true},
	}
	cardUserFields = []Field{
		{Name: "cardId", Kind: KindUUID, Required: true},
		{Name: "userId", Kind: KindUUID, Required: true},
		{Name: "isOwner", Kind: KindBool, Required: true},
	}
	listFields = []Field{
		{Name: "name", Kind: KindString, Required: true, Rules: "notblank"},
		{Name: "boardId", Kind: KindUUID, Required: true},
	}
	cardFields = []Field{
		{Name: "title", Kind: KindString, Required: true, Rules: "notblank"},
		{Name: "description", Kind: KindString},
		{Name: "dueDate", Kind: KindDate},
		{Name: "listId", Kind: KindUUID, Required: true},
	}
)

func User(r Record) (NewUser, error) {
	v, err := check(r, userFields)
	if err != nil {
		return NewUser{}, err
	}
	return NewUser{Name: v.str("name"), Email: v.str("email")}, nil
}

func Board(r Record) (NewBoard, error) {
	v, err := check(r, boardFields)
	if err != nil {
		return NewBoard{}, err
	}
	return NewBoard{Name: v.str("name"), AdminUserID: v.id("adminUserId")}, nil
}

func BoardUser(r Record) (NewBoardUser, error) {
	v, err := check(r, boardUserFields)
	if err != nil {
		return NewBoardUser{}, err
	}
	return NewBoardUser{
		BoardID: v.id("boardId"),
		UserID:  v.id("userId"),
		IsAdmin: v.flag("isAdmin"),
	}, nil
}

func CardUser(r Record) (NewCardUser, error) {
	v, err := check(r, cardUserFields)
	if err != nil {
		return NewCardUser{}, err
	}
	return NewCardUser{
		CardID:  v.id("cardId"),
		UserID:  v.id("userId"),
		IsOwner: v.flag("isOwner"),
	}, nil
}

func List(r Record) (NewList, error) {
	v, err := check(r, listFields)
	if err != nil {
		return NewList{}, err
	}
	return NewList{Name: v.str("name"), BoardID: v.id("boardId")}, nil
}

func Card(r Record) (NewCard, error) {
	v, err := check(r, cardFields)
	if err != nil {
		return NewCard{}, err
	}
	return NewCard{
		Title:       v.str("title"),
		Description: v.optStr("description"),
		DueDate:     v.optTime("dueDate"),
		ListID:      v.id("listId"),
	}, nil
}
