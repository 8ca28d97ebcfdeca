package identity

import (
	"context"
	"log/slog"

	"github.com/hongminglow/ideax-be/internal/auth"
	"github.com/hongminglow/ideax-be/internal/models"
	"github.com/hongminglow/ideax-be/internal/storage"
)

// AdminSeed describes the administrator account created on first start.
type AdminSeed struct {
	Email              string
	Password           string
	FullName           string
	CompanyName        string
	Phone              string
	CompanyDescription string
}

// DefaultAdminSeed returns the well-known administrator defaults.
func DefaultAdminSeed() AdminSeed {
	return AdminSeed{
		Email:              "admin@system.com",
		Password:           "123456",
		FullName:           "Admin System",
		CompanyName:        "System Default",
		Phone:              "0000000000",
		CompanyDescription: "System default administrator account",
	}
}

// EnsureAdmin creates the administrator account unless one already exists.
// It reports whether an account was created. When another process wins the race the
// storage conflict comes back as ErrDuplicateIdentity.
func EnsureAdmin(ctx context.Context, store storage.AccountStore, hasher auth.Hasher, log *slog.Logger, seed AdminSeed) (bool, error) {
	const op = "identity.EnsureAdmin"
	if log == nil {
		log = slog.Default()
	}

	exists, err := store.ExistsByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, &Error{Op: op, Kind: ErrPersistence, Err: err}
	}
	if exists {
		log.DebugContext(ctx, "admin account already present")
		return false, nil
	}

	email := NormalizeEmail(seed.Email)
	if err := validateEmail(op, email); err != nil {
		return false, err
	}
	if err := validatePassword(op, seed.Password); err != nil {
		return false, err
	}

	digest, err := hasher.Hash(seed.Password)
	if err != nil {
		return false, &Error{Op: op, Kind: ErrHashing, Err: err}
	}

	admin := models.Account{
		Email:        email,
		PasswordHash: digest,
		FullName:     seed.FullName,
		CompanyName:  seed.CompanyName,
		Phone:        seed.Phone,
		Status:       models.StatusActive,
		Profile:      models.AdminProfile{CompanyDescription: seed.CompanyDescription},
	}
	created, err := store.Save(ctx, admin)
	if err != nil {
		return false, storeError(op, err)
	}

	log.InfoContext(ctx, "default admin account created", "account_id", created.ID, "email", created.Email)
	return true, nil
}
