package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hongminglow/ideax-be/internal/auth"
	"github.com/hongminglow/ideax-be/internal/models"
	"github.com/hongminglow/ideax-be/internal/models/dto"
	"github.com/hongminglow/ideax-be/internal/storage"
)

// Sign-up outcomes reported to the Recorder.
const (
	OutcomeCreated   = "created"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

// Recorder observes registration outcomes.
type Recorder interface {
	SignUp(role models.Role, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) SignUp(models.Role, string) {}

// Service registers startups and investors.
type Service struct {
	store    storage.AccountStore
	hasher   auth.Hasher
	log      *slog.Logger
	recorder Recorder
}

// Option customizes a Service.
type Option func(*Service)

// WithRecorder reports every registration outcome to r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService constructs a registration service.
func NewService(store storage.AccountStore, hasher auth.Hasher, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{store: store, hasher: hasher, log: log, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterStartup creates a STARTUP account. Website, logo and description may be empty.
func (s *Service) RegisterStartup(ctx context.Context, req dto.StartupSignUpRequest) (dto.SignUpResponse, error) {
	const op = "identity.RegisterStartup"

	acc := models.Account{
		Email:       NormalizeEmail(req.Email),
		FullName:    strings.TrimSpace(req.FullName),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Profile: models.StartupProfile{
			Website:            strings.TrimSpace(req.Website),
			CompanyLogo:        strings.TrimSpace(req.CompanyLogo),
			CompanyDescription: strings.TrimSpace(req.CompanyDescription),
		},
	}
	return s.register(ctx, op, acc, req.Password, req.ConfirmPassword)
}

// RegisterInvestor creates an INVESTOR account. Position and investment focus may be empty.
// No company description is stored for investors.
func (s *Service) RegisterInvestor(ctx context.Context, req dto.InvestorSignUpRequest) (dto.SignUpResponse, error) {
	const op = "identity.RegisterInvestor"

	acc := models.Account{
		Email:       NormalizeEmail(req.Email),
		FullName:    strings.TrimSpace(req.FullName),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Profile: models.InvestorProfile{
			Position:        strings.TrimSpace(req.Position),
			InvestmentFocus: strings.TrimSpace(req.InvestmentFocus),
		},
	}
	return s.register(ctx, op, acc, req.Password, req.ConfirmPassword)
}

func (s *Service) register(ctx context.Context, op string, acc models.Account, password, confirm string) (dto.SignUpResponse, error) {
	role := acc.Role()
	resp, err := s.create(ctx, op, acc, password, confirm)
	outcome := outcomeOf(err)
	s.recorder.SignUp(role, outcome)

	switch outcome {
	case OutcomeCreated:
		s.log.InfoContext(ctx, "account registered", "account_id", resp.ID, "role", role)
	case OutcomeFailed:
		s.log.ErrorContext(ctx, "registration failed", "role", role, "error", err)
	default:
		s.log.InfoContext(ctx, "registration rejected", "role", role, "reason", outcome, "field", FieldOf(err))
	}
	return resp, err
}

func (s *Service) create(ctx context.Context, op string, acc models.Account, password, confirm string) (dto.SignUpResponse, error) {
	if err := requireFields(op,
		field{"fullName", acc.FullName},
		field{"companyName", acc.CompanyName},
	); err != nil {
		return dto.SignUpResponse{}, err
	}
	if err := validateEmail(op, acc.Email); err != nil {
		return dto.SignUpResponse{}, err
	}
	if err := validatePassword(op, password); err != nil {
		return dto.SignUpResponse{}, err
	}
	if confirm != "" && confirm != password {
		return dto.SignUpResponse{}, invalid(op, "confirmPassword", "does not match password")
	}

	exists, err := s.store.ExistsByEmail(ctx, acc.Email)
	if err != nil {
		return dto.SignUpResponse{}, &Error{Op: op, Kind: ErrPersistence, Err: err}
	}
	if exists {
		return dto.SignUpResponse{}, &Error{Op: op, Kind: ErrDuplicateIdentity, Field: storage.FieldEmail}
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return dto.SignUpResponse{}, &Error{Op: op, Kind: ErrHashing, Err: err}
	}
	acc.PasswordHash = digest
	acc.Status = models.StatusActive

	created, err := s.store.Save(ctx, acc)
	if err != nil {
		return dto.SignUpResponse{}, storeError(op, err)
	}

	return dto.SignUpResponse{ID: created.ID, Email: created.Email, Role: created.Role()}, nil
}

// storeError classifies a failed write: unique-key collisions become duplicates, everything else persistence.
func storeError(op string, err error) error {
	var conflict storage.ConflictError
	if errors.As(err, &conflict) {
		return &Error{Op: op, Kind: ErrDuplicateIdentity, Field: conflict.Field, Err: err}
	}
	if errors.Is(err, storage.ErrAlreadyExists) {
		return &Error{Op: op, Kind: ErrDuplicateIdentity, Err: err}
	}
	return &Error{Op: op, Kind: ErrPersistence, Err: err}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, ErrDuplicateIdentity):
		return OutcomeDuplicate
	default:
		return OutcomeFailed
	}
}
