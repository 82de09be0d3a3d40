package validation_test

import (
	"testing"
	"time"

	"taskboard/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violationsOf(t *testing.T, err error) []validation.Violation {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	return verr.Violations
}

func TestParseRecord(t *testing.T) {
	rec, err := validation.ParseRecord([]byte(`{"name":"x","isAdmin":true}`))

	require.NoError(t, err)
	assert.Equal(t, "x", rec["name"])
	assert.Equal(t, true, rec["isAdmin"])
}

func TestParseRecord_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `   `, `not json`, `[]`, `"name"`, `42`, `null`, `{"name":`} {
		_, err := validation.ParseRecord([]byte(body))

		assert.Equal(t,
			[]validation.Violation{{Field: "body", Constraint: validation.ConstraintJSONObject}},
			violationsOf(t, err), "body %q", body)
	}
}

func TestUser_EmptyPayloadReportsEveryField(t *testing.T) {
	_, err := validation.User(validation.Record{})

	assert.Equal(t, []validation.Violation{
		{Field: "name", Constraint: validation.ConstraintRequired},
		{Field: "email", Constraint: validation.ConstraintRequired},
	}, violationsOf(t, err))
}

func TestUser(t *testing.T) {
	tests := []struct {
		name string
		rec  validation.Record
		want []validation.Violation
	}{
		{"valid", validation.Record{"name": "Ada", "email": "ada@example.com"}, nil},
		{"null counts as missing", validation.Record{"name": nil, "email": "ada@example.com"},
			[]validation.Violation{{Field: "name", Constraint: validation.ConstraintRequired}}},
		{"blank name", validation.Record{"name": "   ", "email": "ada@example.com"},
			[]validation.Violation{{Field: "name", Constraint: validation.ConstraintNonEmpty}}},
		{"wrong types", validation.Record{"name": 7.0, "email": true},
			[]validation.Violation{
				{Field: "name", Constraint: validation.ConstraintString},
				{Field: "email", Constraint: validation.ConstraintString},
			}},
		{"malformed email", validation.Record{"name": "Ada", "email": "ada-at-example"},
			[]validation.Violation{{Field: "email", Constraint: validation.ConstraintEmail}}},
		{"empty email", validation.Record{"name": "Ada", "email": ""},
			[]validation.Violation{{Field: "email", Constraint: validation.ConstraintNonEmpty}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := validation.User(tt.rec)
			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, validation.NewUser{Name: "Ada", Email: "ada@example.com"}, u)
				return
			}
			assert.Equal(t, tt.want, violationsOf(t, err))
		})
	}
}

func TestBoard(t *testing.T) {
	admin := uuid.New()

	b, err := validation.Board(validation.Record{"name": "Sprint", "adminUserId": admin.String()})
	require.NoError(t, err)
	assert.Equal(t, validation.NewBoard{Name: "Sprint", AdminUserID: admin}, b)

	_, err = validation.Board(validation.Record{"adminUserId": "not-a-uuid"})
	assert.Equal(t, []validation.Violation{
		{Field: "name", Constraint: validation.ConstraintRequired},
		{Field: "adminUserId", Constraint: validation.ConstraintUUID},
	}, violationsOf(t, err))
}

func TestBoard_AcceptsSnakeCaseAlias(t *testing.T) {
	admin := uuid.New()

	b, err := validation.Board(validation.Record{"name": "Sprint", "admin_user_id": admin.String()})

	require.NoError(t, err)
	assert.Equal(t, admin, b.AdminUserID)
}

func TestBoardUser(t *testing.T) {
	board, user := uuid.New(), uuid.New()

	m, err := validation.BoardUser(validation.Record{"boardId": board.String(), "userId": user.String(), "isAdmin": false})
	require.NoError(t, err)
	assert.Equal(t, validation.NewBoardUser{BoardID: board, UserID: user, IsAdmin: false}, m)

	_, err = validation.BoardUser(validation.Record{"boardId": board.String(), "isAdmin": "yes"})
	assert.Equal(t, []validation.Violation{
		{Field: "userId", Constraint: validation.ConstraintRequired},
		{Field: "isAdmin", Constraint: validation.ConstraintBoolean},
	}, violationsOf(t, err))
}

func TestCardUser_AcceptsLegacySpellings(t *testing.T) {
	card, user := uuid.New(), uuid.New()

	o, err := validation.CardUser(validation.Record{"card_id": card.String(), "userid": user.String(), "is_owner": true})

	require.NoError(t, err)
	assert.Equal(t, validation.NewCardUser{CardID: card, UserID: user, IsOwner: true}, o)
}

func TestList_PathValueWinsOverBody(t *testing.T) {
	pathBoard, bodyBoard := uuid.New(), uuid.New()

	rec, err := validation.ParseRecord([]byte(`{"name":"x","board_id":"` + bodyBoard.String() + `"}`))
	require.NoError(t, err)
	rec.Set("boardId", pathBoard.String())

	l, err := validation.List(rec)

	require.NoError(t, err)
	assert.Equal(t, pathBoard, l.BoardID)
	assert.NotContains(t, rec, "board_id")
}

func TestCard(t *testing.T) {
	list := uuid.New()

	c, err := validation.Card(validation.Record{"title": "Write tests", "listId": list.String()})
	require.NoError(t, err)
	assert.Nil(t, c.Description)
	assert.Nil(t, c.DueDate)

	c, err = validation.Card(validation.Record{
		"title":       "Write tests",
		"description": "all of them",
		"due_date":    "2026-11-01",
		"listId":      list.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, c.Description)
	assert.Equal(t, "all of them", *c.Description)
	require.NotNil(t, c.DueDate)
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), *c.DueDate)

	c, err = validation.Card(validation.Record{"title": "x", "dueDate": "2026-11-01T09:30:00Z", "listId": list.String()})
	require.NoError(t, err)
	assert.Equal(t, 9, c.DueDate.Hour())

	_, err = validation.Card(validation.Record{"description": 3.0, "dueDate": "next week"})
	assert.Equal(t, []validation.Violation{
		{Field: "title", Constraint: validation.ConstraintRequired},
		{Field: "description", Constraint: validation.ConstraintString},
		{Field: "dueDate", Constraint: validation.ConstraintDate},
		{Field: "listId", Constraint: validation.ConstraintRequired},
	}, violationsOf(t, err))
}

func TestError_Message(t *testing.T) {
	err := &validation.Error{Violations: []validation.Violation{
		{Field: "name", Constraint: "required"},
		{Field: "email", Constraint: "email"},
	}}

	assert.Equal(t, "validation failed: name: required, email: email", err.Error())
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"lower case", "6f9619ff-8b86-d011-b42d-00c04fc964ff", true},
		{"upper case", "6F9619FF-8B86-D011-B42D-00C04FC964FF", true},
		{"braces", "{6f9619ff-8b86-d011-b42d-00c04fc964ff}", false},
		{"urn", "urn:uuid:6f9619ff-8b86-d011-b42d-00c04fc964ff", false},
		{"no hyphens", "6f9619ff8b86d011b42d00c04fc964ff", false},
		{"garbage", "not-a-uuid", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := validation.ParseID(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", id.String())
			}
		})
	}
}

func TestList_UpperCaseBoardID(t *testing.T) {
	l, err := validation.List(validation.Record{"name": "Todo", "boardId": "6F9619FF-8B86-D011-B42D-00C04FC964FF"})

	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("6f9619ff-8b86-d011-b42d-00c04fc964ff"), l.BoardID)
}
