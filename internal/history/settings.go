package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/khanglvm/marketing-support/internal/storage"
)

// EmailKey is the storage key of the saved email address.
const EmailKey = "rehit_user_gmail"

// InvalidEmailError rejects an address without '@'.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email address %q\n💡 Enter a valid email address, e.g. example@gmail.com", e.Email)
}

// Settings stores user preferences independently of history.
type Settings struct {
	kv storage.Store
}

// NewSettings creates a settings store over kv.
func NewSettings(kv storage.Store) *Settings {
	return &Settings{kv: kv}
}

// Email returns the saved address, or "" if none.
func (s *Settings) Email(ctx context.Context) (string, error) {
	v, _, err := s.kv.GetItem(ctx, EmailKey)
	if err != nil {
		return "", fmt.Errorf("failed to read email: %w", err)
	}
	return v, nil
}

// SaveEmail validates and saves the address. Nothing is written on error.
func (s *Settings) SaveEmail(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return "", &InvalidEmailError{Email: email}
	}
	if err := s.kv.SetItem(ctx, EmailKey, email); err != nil {
		return "", fmt.Errorf("failed to save email: %w", err)
	}
	return email, nil
}
