package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sipico/animal-inventory/internal/inventory"
	"github.com/sipico/animal-inventory/internal/session"
)

// Authenticator is the part of the inventory client used by the entry view.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
}

// AuthError carries the message to show for a failed login or registration.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Login exchanges credentials for a token and saves it in store.
func Login(ctx context.Context, auth Authenticator, store session.Store, logger *slog.Logger, username, password string) error {
	token, err := auth.Login(ctx, username, password)
	if err != nil {
		return authFailure(logger, "login failed", MsgLoginFailed, err)
	}

	if err := store.SaveToken(ctx, token); err != nil {
		logger.Error("failed to store token", "error", err)
		return &AuthError{Message: MsgGeneric, Err: err}
	}
	return nil
}

// Register creates an account. The caller shows MsgRegistered on success.
func Register(ctx context.Context, auth Authenticator, logger *slog.Logger, username, password string) error {
	if err := auth.Register(ctx, username, password); err != nil {
		return authFailure(logger, "registration failed", MsgRegisterFailed, err)
	}
	return nil
}

// Logout forgets the stored token.
func Logout(ctx context.Context, store session.Store) error {
	return store.ClearToken(ctx)
}

func authFailure(logger *slog.Logger, logMsg, userMsg string, err error) error {
	if inventory.IsStatusError(err) {
		logger.Info(logMsg, "error", err)
		return &AuthError{Message: userMsg, Err: err}
	}
	logger.Error(logMsg, "error", err)
	return &AuthError{Message: MsgGeneric, Err: err}
}
