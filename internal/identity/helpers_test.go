package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/hongminglow/ideax-be/internal/models"
	"github.com/hongminglow/ideax-be/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingHasher records calls and returns a digest distinct from the plaintext.
type countingHasher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

func (h *countingHasher) Verify(digest, plaintext string) bool {
	return digest == "hashed:"+plaintext
}

func (h *countingHasher) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

// stubStore lets tests inject storage failures and race conditions.
type stubStore struct {
	existsByRole  bool
	existsByEmail bool
	existsErr     error
	saveErr       error
	saves         int
}

var _ storage.AccountStore = (*stubStore)(nil)

func (s *stubStore) ExistsByRole(ctx context.Context, role models.Role) (bool, error) {
	return s.existsByRole, s.existsErr
}

func (s *stubStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.existsByEmail, s.existsErr
}

func (s *stubStore) Save(ctx context.Context, account models.Account) (models.Account, error) {
	s.saves++
	if s.saveErr != nil {
		return models.Account{}, s.saveErr
	}
	account.ID = int64(s.saves)
	return account, nil
}

var errUnavailable = errors.New("connection refused")

type recordedOutcome struct {
	role    models.Role
	outcome string
}

type fakeRecorder struct {
	got []recordedOutcome
}

func (r *fakeRecorder) SignUp(role models.Role, outcome string) {
	r.got = append(r.got, recordedOutcome{role, outcome})
}
