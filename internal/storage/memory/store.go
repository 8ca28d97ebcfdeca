// Package memory provides an in-process AccountStore used as a test double.
// The server always persists through the postgres package.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hongminglow/ideax-be/internal/models"
	"github.com/hongminglow/ideax-be/internal/storage"
)

var _ storage.AccountStore = (*Store)(nil)

// Store keeps accounts in memory. All uniqueness checks happen under one lock together with the insert.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]models.Account
	byEmail map[string]int64
	byPhone map[string]int64
	adminID int64
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[int64]models.Account),
		byEmail: make(map[string]int64),
		byPhone: make(map[string]int64),
		now:     time.Now,
	}
}

func (s *Store) ExistsByRole(ctx context.Context, role models.Role) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if role == models.RoleAdmin {
		return s.adminID != 0, nil
	}
	for _, acc := range s.byID {
		if acc.Role() == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *Store) Save(ctx context.Context, account models.Account) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[account.Email]; ok {
		return models.Account{}, storage.ConflictError{Field: storage.FieldEmail}
	}
	if account.Phone != "" {
		if _, ok := s.byPhone[account.Phone]; ok {
			return models.Account{}, storage.ConflictError{Field: storage.FieldPhone}
		}
	}
	isAdmin := account.Role() == models.RoleAdmin
	if isAdmin && s.adminID != 0 {
		return models.Account{}, storage.ConflictError{Field: storage.FieldAdmin}
	}

	s.nextID++
	account.ID = s.nextID
	account.CreatedAt = s.now().UTC()

	s.byID[account.ID] = account
	s.byEmail[account.Email] = account.ID
	if account.Phone != "" {
		s.byPhone[account.Phone] = account.ID
	}
	if isAdmin {
		s.adminID = account.ID
	}
	return account, nil
}

// FindByEmail returns the account registered under email. Tests use it to
// inspect what was saved; it is not part of storage.AccountStore.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}

// Len returns the number of stored accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// CountByRole returns how many accounts hold role.
func (s *Store) CountByRole(role models.Role) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, acc := range s.byID {
		if acc.Role() == role {
			n++
		}
	}
	return n
}
