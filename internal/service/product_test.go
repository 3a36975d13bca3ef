package service

import (
	"context"
	"testing"

	"github.com/bestsenki/storefront/internal/api/dto"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewVariants(t *testing.T) {
	svc := NewProductService(ServiceParams{})

	resp, err := svc.PreviewVariants(context.Background(), &dto.VariantPreviewRequest{
		FirstOption:  []string{"S", "M", " M "},
		SecondOption: []string{"Красный", "Белый"},
		Price:        decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	require.Len(t, resp.Variants, 4)
	assert.Equal(t, "S / Красный", resp.Variants[0].Title)
	assert.Equal(t, "M / Белый", resp.Variants[3].Title)

	_, err = svc.PreviewVariants(context.Background(), &dto.VariantPreviewRequest{
		Price:          decimal.NewFromInt(1500),
		CompareAtPrice: lo.ToPtr(decimal.NewFromInt(1000)),
	})
	assert.True(t, ierr.IsValidation(err))
}
