package service

import (
	"testing"
	"time"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/review"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReviewServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ReviewService
}

func TestReviewService(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

func (s *ReviewServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewReviewService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ReviewServiceSuite) TestCreateReviewDefaults() {
	resp, err := s.service.CreateReview(s.GetContext(), " roses-101 ", &dto.CreateReviewRequest{Rating: 5, Comment: "  "})
	s.Require().NoError(err)

	s.Equal("roses-101", resp.Handle)
	s.Equal(testutil.DefaultAccountID, resp.AccountID)
	s.Nil(resp.Comment, "blank comment is stored as none")
	s.Require().NotNil(resp.UserName)
	s.Equal("anna", *resp.UserName)

	resp, err = s.service.CreateReview(s.GetContext(), "roses-101", &dto.CreateReviewRequest{Rating: 4, Comment: "Свежие", UserName: "Анна К."})
	s.Require().NoError(err)
	s.Equal("Свежие", *resp.Comment)
	s.Equal("Анна К.", *resp.UserName)
}

func (s *ReviewServiceSuite) TestCreateReviewRequiresLoginAndValidRating() {
	_, err := s.service.CreateReview(testutil.SetupGuestContext(), "roses-101", &dto.CreateReviewRequest{Rating: 5})
	s.True(ierr.IsUnauthenticated(err))

	for _, rating := range []int{0, 6, -1} {
		_, err = s.service.CreateReview(s.GetContext(), "roses-101", &dto.CreateReviewRequest{Rating: rating})
		s.True(ierr.IsValidation(err), "rating %d", rating)
	}

	_, err = s.service.CreateReview(s.GetContext(), " ", &dto.CreateReviewRequest{Rating: 5})
	s.True(ierr.IsValidation(err))
}

func (s *ReviewServiceSuite) TestListReviewsNewestFirstWithAverage() {
	store := s.GetStores().ReviewRepo
	base := s.GetNow().Add(-time.Hour)
	for i, rating := range []int{5, 3, 4} {
		s.Require().NoError(store.Create(s.GetContext(), &review.Review{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REVIEW),
			AccountID: testutil.DefaultAccountID,
			Handle:    "roses-101",
			Rating:    rating,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	s.Require().NoError(store.Create(s.GetContext(), &review.Review{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REVIEW),
		AccountID: testutil.DefaultAccountID,
		Handle:    "tulips-7",
		Rating:    1,
		CreatedAt: base,
	}))

	resp, err := s.service.ListReviews(testutil.SetupGuestContext(), "roses-101")
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 3)
	s.Equal(4, resp.Items[0].Rating)
	s.Equal(5, resp.Items[2].Rating)
	s.Equal(3, resp.Summary.Count)
	s.True(resp.Summary.Average.Equal(decimal.NewFromInt(4)), resp.Summary.Average.String())

	empty, err := s.service.ListReviews(s.GetContext(), "peonies")
	s.Require().NoError(err)
	s.NotNil(empty.Items)
	s.Empty(empty.Items)
	s.Equal(0, empty.Summary.Count)
}

func (s *ReviewServiceSuite) TestNewReviewInvalidatesCachedList() {
	resp, err := s.service.ListReviews(s.GetContext(), "roses-101")
	s.Require().NoError(err)
	s.Empty(resp.Items)

	_, err = s.service.CreateReview(s.GetContext(), "roses-101", &dto.CreateReviewRequest{Rating: 2})
	s.Require().NoError(err)

	resp, err = s.service.ListReviews(s.GetContext(), "roses-101")
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.True(resp.Summary.Average.Equal(decimal.NewFromInt(2)))
}
