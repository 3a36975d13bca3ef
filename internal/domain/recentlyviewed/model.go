package recentlyviewed

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Entry is a product snapshot recorded when an account opens a product page
type Entry struct {
	ID        string          `db:"id" json:"id"`
	AccountID string          `db:"user_id" json:"account_id"`
	Handle    string          `db:"handle" json:"handle"`
	Title     string          `db:"title" json:"title"`
	ImageURL  string          `db:"image_url" json:"image_url"`
	Price     decimal.Decimal `db:"price" json:"price" swaggertype:"string"`
	ViewedAt  time.Time       `db:"viewed_at" json:"viewed_at"`
}

// Push puts e at the front of entries, dropping any older entry with the
// same handle and keeping at most limit items.
func Push(entries []*Entry, e *Entry, limit int) []*Entry {
	rest := lo.Filter(entries, func(x *Entry, _ int) bool {
		return x.Handle != e.Handle
	})
	out := append([]*Entry{e}, rest...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Repository interface {
	// Upsert inserts the entry or refreshes viewed_at and the snapshot for an existing handle
	Upsert(ctx context.Context, e *Entry) error
	// List returns the newest views first
	List(ctx context.Context, accountID string, limit int) ([]*Entry, error)
	// Trim deletes everything beyond the newest keep entries
	Trim(ctx context.Context, accountID string, keep int) error
	Clear(ctx context.Context, accountID string) error
}
