package review

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

// Review is a customer's rating of a product, keyed by catalog handle.
// UserName is the display name captured when the review was written.
type Review struct {
	ID        string    `db:"id" json:"id"`
	AccountID string    `db:"user_id" json:"account_id"`
	Handle    string    `db:"handle" json:"handle"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   *string   `db:"comment" json:"comment,omitempty"`
	UserName  *string   `db:"user_name" json:"user_name,omitempty"`
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

func (r *Review) Validate() error {
	if err := ValidateHandle(r.Handle); err != nil {
		return err
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ierr.NewErrorf("rating %d out of range", r.Rating).
			WithHintf("Оценка должна быть от %d до %d", MinRating, MaxRating).
			WithReportableDetails(map[string]any{
				"rating": r.Rating,
			}).
			Mark(ierr.ErrValidation)
	}
	if r.Comment != nil && utf8.RuneCountInString(*r.Comment) > MaxCommentLength {
		return ierr.NewError("review comment too long").
			WithHintf("Отзыв не может быть длиннее %d символов", MaxCommentLength).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Summary is the aggregate shown next to a product's reviews
type Summary struct {
	Count int `json:"count"`
	// Average is rounded to one decimal place, zero without reviews
	Average decimal.Decimal `json:"average" swaggertype:"string"`
}

func Summarize(reviews []*Review) Summary {
	if len(reviews) == 0 {
		return Summary{Average: decimal.Zero}
	}
	total := lo.SumBy(reviews, func(r *Review) int { return r.Rating })
	return Summary{
		Count:   len(reviews),
		Average: decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(len(reviews)))).Round(1),
	}
}

type Repository interface {
	Create(ctx context.Context, r *Review) error
	// ListByHandle returns a product's reviews, newest first
	ListByHandle(ctx context.Context, handle string) ([]*Review, error)
}
