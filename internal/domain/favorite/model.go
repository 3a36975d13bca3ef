package favorite

import (
	"context"
	"strings"
	"time"

	ierr "github.com/bestsenki/storefront/internal/errors"
)

// Favorite is a saved product, keyed by catalog handle
type Favorite struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"user_id" json:"account_id"`
	Handle    string    `db:"handle" json:"handle"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func ValidateHandle(handle string) error {
	if strings.TrimSpace(handle) == "" {
		return ierr.NewError("product handle is required").
			WithHint("Product handle is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type Repository interface {
	// Add is idempotent per (account, handle)
	Add(ctx context.Context, f *Favorite) error
	Remove(ctx context.Context, accountID, handle string) error
	Exists(ctx context.Context, accountID, handle string) (bool, error)
	// List returns handles in the order they were added
	List(ctx context.Context, accountID string) ([]*Favorite, error)
}
