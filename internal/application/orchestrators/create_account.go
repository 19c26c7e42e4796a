package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"celula/internal/domain/account"

	"github.com/google/uuid"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// CreateAccountInput carries input for the orchestrator.
type CreateAccountInput struct {
	Email    string
	Password string
	Role     string
	CelulaID int64
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")

// ExecuteCreateAccount coordinates account creation.
// PRE: Valid email, password >= 12 chars, valid role
// POST: Account created with hashed password; returns its id
// INVARIANT: Email must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	email := strings.TrimSpace(input.Email)
	if _, err := deps.AccountStore.GetByEmail(ctx, email); err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      input.Role,
		CelulaID:  input.CelulaID,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", fmt.Errorf("save account: %w", err)
	}

	slog.Info("auth_event", "event", "account_created", "email", email, "role", acct.Role)
	return acct.ID, nil
}

// ExecuteSeedAdmin creates the first admin account when none exists yet.
// POST: Returns true when an account was created
// INVARIANT: Never touches a database that already has accounts
func ExecuteSeedAdmin(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (bool, error) {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	input.Role = account.RoleAdmin
	if _, err := ExecuteCreateAccount(ctx, input, deps); err != nil {
		return false, err
	}
	return true, nil
}
