package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/ideax-be/internal/models"
	"github.com/hongminglow/ideax-be/internal/storage"
)

// TestStoreIntegration exercises the account store against a live Postgres database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := NewAccountStore(ctx, dbURL, nil)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Ping(ctx))

	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("it_%d@example.com", suffix)
	phone := fmt.Sprintf("+1555%d", suffix%10_000_000)

	acc := models.Account{
		Email:        email,
		PasswordHash: "$2a$04$placeholder",
		FullName:     "Integration Startup",
		CompanyName:  "Acme",
		Phone:        phone,
		Status:       models.StatusActive,
		Profile:      models.StartupProfile{Website: "https://acme.io"},
	}
	before := time.Now().Add(-time.Minute)
	created, err := store.Save(ctx, acc)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.CreatedAt.After(before))
	assert.Equal(t, models.RoleStartup, created.Role())

	exists, err := store.ExistsByEmail(ctx, email)
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, models.StartupProfile{Website: "https://acme.io"}, found.Profile)

	dup := acc
	dup.Phone = ""
	_, err = store.Save(ctx, dup)
	var conflict storage.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, storage.FieldEmail, conflict.Field)

	dup.Email = fmt.Sprintf("it_%d_2@example.com", suffix)
	dup.Phone = phone
	_, err = store.Save(ctx, dup)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, storage.FieldPhone, conflict.Field)

	// At most one admin can ever exist.
	admin := models.Account{
		Email:        fmt.Sprintf("admin_%d@example.com", suffix),
		PasswordHash: "$2a$04$placeholder",
		Status:       models.StatusActive,
		Profile:      models.AdminProfile{},
	}
	_, _ = store.Save(ctx, admin)
	admin.Email = fmt.Sprintf("admin_%d_2@example.com", suffix)
	_, err = store.Save(ctx, admin)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, storage.FieldAdmin, conflict.Field)

	count, err := countByRole(ctx, store, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = store.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}

func countByRole(ctx context.Context, store *Store, role models.Role) (int, error) {
	var n int
	err := store.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1`, string(role)).Scan(&n)
	return n, err
}
