package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/ideax-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// Logical keys reported by ConflictError.
const (
	FieldEmail = "email"
	FieldPhone = "phone"
	FieldAdmin = "admin"
)

// ConflictError names the unique key a write collided with.
type ConflictError struct {
	Field string
}

func (e ConflictError) Error() string {
	if e.Field == "" {
		return ErrAlreadyExists.Error()
	}
	return fmt.Sprintf("%v: %s", ErrAlreadyExists, e.Field)
}

func (e ConflictError) Unwrap() error { return ErrAlreadyExists }

// AccountStore captures the persistence operations needed by registration and bootstrap.
// Implementations enforce email, phone and single-admin uniqueness atomically and
// report violations as ConflictError.
type AccountStore interface {
	ExistsByRole(ctx context.Context, role models.Role) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserts account and returns it with ID and CreatedAt assigned.
	Save(ctx context.Context, account models.Account) (models.Account, error)
}
