// Package service defines the operations the client consumes and two
// interchangeable bindings for them: an in-process mock used during
// development, and an HTTP client against the remote service. Callers pick
// one at construction time and never check the environment again.
package service

import (
	"context"

	"github.com/wanderlog/expenseclient/internal/storage"
)

// Error is the one failure shape both bindings produce. Status carries the
// HTTP code when the failure came off the wire, zero for mock failures.
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Credential is the opaque proof of an authenticated session.
type Credential struct {
	Token     string
	TokenType string
}

// LoginResult is what a successful code verification returns.
type LoginResult struct {
	Credential Credential
	User       storage.User
}

type ExpenseService interface {
	PublicExpenses(ctx context.Context) ([]storage.Expense, error)
	PersonalExpenses(ctx context.Context) ([]storage.Expense, error)
	Create(ctx context.Context, input storage.ExpenseInput) (storage.Expense, error)
	Update(ctx context.Context, id int64, update storage.ExpenseUpdate) (storage.Expense, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	RequestVerification(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, code string) (LoginResult, error)
	CurrentUser(ctx context.Context) (storage.User, error)
	RefreshToken(ctx context.Context) (Credential, error)
	Logout(ctx context.Context) (string, error)
}

// CredentialSource exposes the stored credential to the HTTP binding.
type CredentialSource interface {
	Token() string
}
