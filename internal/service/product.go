package service

import (
	"context"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/product"
)

type ProductService interface {
	// PreviewVariants expands two option lists into the variant rows an admin is about to create
	PreviewVariants(ctx context.Context, req *dto.VariantPreviewRequest) (*dto.VariantPreviewResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{
		ServiceParams: params,
	}
}

func (s *productService) PreviewVariants(ctx context.Context, req *dto.VariantPreviewRequest) (*dto.VariantPreviewResponse, error) {
	variants, err := product.BuildVariants(req.FirstOption, req.SecondOption, req.Price, req.CompareAtPrice)
	if err != nil {
		return nil, err
	}
	return &dto.VariantPreviewResponse{Variants: variants}, nil
}
