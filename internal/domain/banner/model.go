package banner

import (
	"context"
	"strings"
	"time"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
)

// Banner is a storefront promo strip. Discount is display text, e.g. "-15%".
type Banner struct {
	ID              string     `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Code            *string    `db:"code" json:"code,omitempty"`
	Discount        string     `db:"discount" json:"discount"`
	BackgroundColor *string    `db:"background_color" json:"background_color,omitempty"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	StartDate       *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate         *time.Time `db:"end_date" json:"end_date,omitempty"`
	types.BaseModel
}

func (b *Banner) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ierr.NewError("banner title is required").
			WithHint("Banner title is required").
			Mark(ierr.ErrValidation)
	}
	if strings.TrimSpace(b.Discount) == "" {
		return ierr.NewError("banner discount is required").
			WithHint("Banner discount text is required").
			Mark(ierr.ErrValidation)
	}
	if b.StartDate != nil && b.EndDate != nil && b.EndDate.Before(*b.StartDate) {
		return ierr.NewError("banner ends before it starts").
			WithHint("End date must be after start date").
			WithReportableDetails(map[string]any{
				"start_date": b.StartDate,
				"end_date":   b.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsLive reports whether the banner should be shown at now
func (b *Banner) IsLive(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartDate != nil && now.Before(*b.StartDate) {
		return false
	}
	if b.EndDate != nil && !now.Before(*b.EndDate) {
		return false
	}
	return true
}

type Filter struct {
	*types.QueryFilter
	// LiveAt restricts results to banners live at this instant
	LiveAt *time.Time `json:"-"`
	// ActiveOnly restricts results to enabled banners regardless of dates
	ActiveOnly bool `json:"-"`
}

func NewFilter() *Filter {
	return &Filter{QueryFilter: types.NewDefaultQueryFilter()}
}

type Repository interface {
	Create(ctx context.Context, b *Banner) error
	Get(ctx context.Context, id string) (*Banner, error)
	// List returns the newest banners first
	List(ctx context.Context, filter *Filter) ([]*Banner, error)
	Update(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id string) error
}
