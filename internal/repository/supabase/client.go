package supabase

import (
	"github.com/bestsenki/storefront/internal/config"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/nedpals/supabase-go"
)

// NewClient creates a service-role client for the PostgREST tables the
// storefront shares with the Supabase project
func NewClient(cfg *config.Configuration, log *logger.Logger) (*supabase.Client, error) {
	if cfg.Supabase.URL == "" || cfg.Supabase.ServiceKey == "" {
		return nil, ierr.NewError("supabase url and service key are required").
			WithHint("Supabase is not configured").
			Mark(ierr.ErrValidation)
	}

	client := supabase.CreateClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)
	if client == nil {
		return nil, ierr.NewError("failed to create supabase client").
			Mark(ierr.ErrSystem)
	}

	log.Infow("supabase client created", "url", cfg.Supabase.URL)
	return client, nil
}

func restError(err error, hint string) error {
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrHTTPClient)
}
