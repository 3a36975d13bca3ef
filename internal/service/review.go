package service

import (
	"context"
	"strings"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/cache"
	"github.com/bestsenki/storefront/internal/domain/review"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/samber/lo"
)

const reviewsTTL = 5 * time.Minute

type ReviewService interface {
	// ListReviews returns a product's reviews newest first with the average rating
	ListReviews(ctx context.Context, handle string) (*dto.ListReviewsResponse, error)
	CreateReview(ctx context.Context, handle string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
}

type reviewService struct {
	ServiceParams
}

func NewReviewService(params ServiceParams) ReviewService {
	return &reviewService{
		ServiceParams: params,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, handle string) (*dto.ListReviewsResponse, error) {
	handle = strings.TrimSpace(handle)
	if err := review.ValidateHandle(handle); err != nil {
		return nil, err
	}

	key := cache.GenerateKey(cache.PrefixReviews, handle)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if reviews, ok := cached.([]*review.Review); ok {
			return toReviewList(handle, reviews), nil
		}
	}

	reviews, err := s.ReviewRepo.ListByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*review.Review{}
	}

	s.Cache.Set(ctx, key, reviews, reviewsTTL)
	return toReviewList(handle, reviews), nil
}

func (s *reviewService) CreateReview(ctx context.Context, handle string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	accountID := types.GetUserID(ctx)
	if accountID == "" {
		return nil, errLoginRequired("Войдите, чтобы оставить отзыв")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := &review.Review{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REVIEW),
		AccountID: accountID,
		Handle:    strings.TrimSpace(handle),
		Rating:    req.Rating,
		Comment:   lo.EmptyableToPtr(req.Comment),
		UserName:  lo.EmptyableToPtr(lo.CoalesceOrEmpty(req.UserName, emailName(types.GetUserEmail(ctx)))),
		CreatedAt: time.Now().UTC(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.ReviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixReviews, r.Handle))

	s.Logger.Infow("review created",
		"review_id", r.ID,
		"account_id", accountID,
		"handle", r.Handle,
		"rating", r.Rating,
	)
	return &dto.ReviewResponse{Review: r}, nil
}

// emailName is the part of an address before @
func emailName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func toReviewList(handle string, reviews []*review.Review) *dto.ListReviewsResponse {
	return &dto.ListReviewsResponse{
		Handle:  handle,
		Items:   reviews,
		Summary: review.Summarize(reviews),
	}
}
