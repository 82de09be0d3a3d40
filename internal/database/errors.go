package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes
const (
	uniqueViolationCode         = "23505"
	foreignKeyViolationCode     = "23503"
	notNullViolationCode        = "23502"
	checkViolationCode          = "23514"
	invalidTextRepresentation   = "22P02"
	invalidDatetimeFormatCode   = "22007"
	datetimeFieldOverflowCode   = "22008"
	stringDataRightTruncateCode = "22001"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrForeignKey   = errors.New("referenced record does not exist")
	ErrInvalidInput = errors.New("invalid input for column")
	ErrTimeout      = errors.New("database operation timed out")
	ErrQuery        = errors.New("query failed")
)

// StoreError carries a classified database failure together with whatever
// the server reported about it, so the HTTP layer can pass it through.
type StoreError struct {
	Kind       error
	Message    string
	Code       string
	Constraint string
	Detail     string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// MapError classifies err into a *StoreError. nil stays nil and an existing
// *StoreError is returned untouched.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StoreError); ok {
		return se
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StoreError{Kind: ErrNotFound, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return &StoreError{Kind: ErrTimeout, Message: err.Error(), Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se := &StoreError{
			Kind:       ErrQuery,
			Message:    pgErr.Message,
			Code:       pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Detail:     pgErr.Detail,
			Err:        err,
		}
		switch pgErr.Code {
		case uniqueViolationCode:
			se.Kind = ErrDuplicate
		case foreignKeyViolationCode:
			se.Kind = ErrForeignKey
		case notNullViolationCode, checkViolationCode, invalidTextRepresentation,
			invalidDatetimeFormatCode, datetimeFieldOverflowCode, stringDataRightTruncateCode:
			se.Kind = ErrInvalidInput
		}
		return se
	}

	return &StoreError{Kind: ErrQuery, Message: err.Error(), Err: err}
}

// mapWithContext is MapError, except that any failure observed after ctx hit
// its deadline is reported as a timeout whatever the driver said.
func mapWithContext(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if _, ok := err.(*StoreError); !ok {
			return &StoreError{Kind: ErrTimeout, Message: err.Error(), Err: err}
		}
	}
	return MapError(err)
}
