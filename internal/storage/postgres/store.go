package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hongminglow/ideax-be/internal/models"
	"github.com/hongminglow/ideax-be/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Ensure Store satisfies the storage.AccountStore interface at compile time.
var _ storage.AccountStore = (*Store)(nil)

const uniqueViolation = "23505"

// constraintFields maps unique constraint names to the logical key they protect.
var constraintFields = map[string]string{
	"accounts_email_key":        storage.FieldEmail,
	"accounts_phone_key":        storage.FieldPhone,
	"accounts_single_admin_idx": storage.FieldAdmin,
}

// Store provides Postgres-backed persistence for accounts.
type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewAccountStore connects to databaseURL and applies pending migrations.
func NewAccountStore(ctx context.Context, databaseURL string, log *slog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Store{pool: pool, log: log}
	if err := s.migrate(ctx, databaseURL); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks database reachability.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) migrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	s.log.Info("applying migrations")
	if err := goose.UpContext(runCtx, db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// ExistsByRole reports whether any account holds role.
func (s *Store) ExistsByRole(ctx context.Context, role models.Role) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE role = $1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, string(role)).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by role: %w", err)
	}
	return exists, nil
}

// ExistsByEmail reports whether an account is registered under email.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

// Save inserts a new account row. id and created_at come from the database.
func (s *Store) Save(ctx context.Context, account models.Account) (models.Account, error) {
	const query = `
		INSERT INTO accounts (email, password_hash, role, full_name, company_name, website, company_logo,
			company_description, position, investment_focus, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, email, password_hash, role, full_name, company_name, website, company_logo,
			company_description, position, investment_focus, phone, status, created_at;
		`
	cols := models.Columns(account.Profile)
	row := s.pool.QueryRow(ctx, query,
		account.Email, account.PasswordHash, string(account.Role()), account.FullName, account.CompanyName,
		cols.Website, cols.CompanyLogo, cols.CompanyDescription, cols.Position, cols.InvestmentFocus,
		nullable(account.Phone), string(account.Status),
	)
	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Account{}, storage.ConflictError{Field: constraintFields[pgErr.ConstraintName]}
		}
		return models.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return created, nil
}

// FindByEmail fetches an account by email address. It backs the integration
// tests and operator tooling; registration only needs AccountStore.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `
	SELECT id, email, password_hash, role, full_name, company_name, website, company_logo,
		company_description, position, investment_focus, phone, status, created_at
	FROM accounts
	WHERE email = $1;
	`
	return scanAccount(s.pool.QueryRow(ctx, query, email))
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var (
		acc    models.Account
		role   string
		status string
		phone  *string
		cols   models.ProfileColumns
	)
	err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &role, &acc.FullName, &acc.CompanyName,
		&cols.Website, &cols.CompanyLogo, &cols.CompanyDescription, &cols.Position, &cols.InvestmentFocus,
		&phone, &status, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	if phone != nil {
		acc.Phone = *phone
	}
	acc.Status = models.Status(status)
	acc.Profile = models.ProfileForRole(models.Role(role), cols)
	return acc, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
