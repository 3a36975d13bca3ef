package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/bestsenki/storefront/internal/api/dto"
	"github.com/bestsenki/storefront/internal/domain/referral"
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type ReferralServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ReferralService
}

func TestReferralService(t *testing.T) {
	suite.Run(t, new(ReferralServiceSuite))
}

const referrerAccountID = "00000000-0000-0000-0000-000000000002"

func (s *ReferralServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewReferralService(params, NewLoyaltyService(params))
}

func (s *ReferralServiceSuite) referrerCode() string {
	resp, err := s.service.CreateReferral(testutil.WithAccount(s.GetContext(), referrerAccountID))
	s.Require().NoError(err)
	return resp.Code
}

func (s *ReferralServiceSuite) TestCreateReferralIsIdempotent() {
	_, err := s.service.GetReferral(s.GetContext())
	s.True(ierr.IsNotFound(err), "no code before create")

	first, err := s.service.CreateReferral(s.GetContext())
	s.Require().NoError(err)
	s.True(first.Created)
	s.True(strings.HasPrefix(first.Code, referral.CodePrefix))
	s.Len(first.Code, len(referral.CodePrefix)+6)

	second, err := s.service.CreateReferral(s.GetContext())
	s.Require().NoError(err)
	s.False(second.Created)
	s.Equal(first.ID, second.ID)
	s.Equal(first.Code, second.Code)

	got, err := s.service.GetReferral(s.GetContext())
	s.Require().NoError(err)
	s.Equal(first.Code, got.Code)

	_, err = s.service.CreateReferral(testutil.SetupGuestContext())
	s.True(ierr.IsUnauthenticated(err))
	_, err = s.service.GetReferral(testutil.SetupGuestContext())
	s.True(ierr.IsUnauthenticated(err))
}

func (s *ReferralServiceSuite) TestApplyCodeCreditsReferrer() {
	code := s.referrerCode()

	resp, err := s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: "  " + strings.ToLower(code)})
	s.Require().NoError(err)
	s.Require().True(resp.HasReferrer())
	s.Equal(int64(1), s.GetDB().(*testutil.MockPostgresClient).Calls(), "link and bonus share one unit of work")

	referrer, err := s.GetStores().ReferralRepo.GetByAccount(s.GetContext(), referrerAccountID)
	s.Require().NoError(err)
	s.Equal(referrer.ID, *resp.ReferredBy)
	s.Equal(1, referrer.ReferralCount)
	s.True(referrer.BonusEarned.Equal(decimal.NewFromInt(s.GetConfig().Referral.BonusPoints)))

	balance, err := s.GetLoyaltyStore().GetBalance(s.GetContext(), referrerAccountID)
	s.Require().NoError(err)
	s.Equal(s.GetConfig().Referral.BonusPoints, balance.AvailablePoints)

	txs, err := s.GetLoyaltyStore().ListTransactions(s.GetContext(), referrerAccountID, 10)
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(types.LoyaltyTransactionReferral, txs[0].Type)
}

func (s *ReferralServiceSuite) TestApplyCodeOnlyOnce() {
	code := s.referrerCode()

	_, err := s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: code})
	s.Require().NoError(err)

	_, err = s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: code})
	s.True(ierr.IsAlreadyExists(err))

	referrer, err := s.GetStores().ReferralRepo.GetByAccount(s.GetContext(), referrerAccountID)
	s.Require().NoError(err)
	s.Equal(1, referrer.ReferralCount)
}

// staleReferralRepo answers GetByAccount with a snapshot taken before another
// apply landed, as a concurrent request would see it
type staleReferralRepo struct {
	referral.Repository
	snapshot *referral.Referral
}

func (r *staleReferralRepo) GetByAccount(ctx context.Context, accountID string) (*referral.Referral, error) {
	if accountID == r.snapshot.AccountID {
		c := *r.snapshot
		return &c, nil
	}
	return r.Repository.GetByAccount(ctx, accountID)
}

func (s *ReferralServiceSuite) TestApplyCodeLosesRaceWithoutSecondCredit() {
	code := s.referrerCode()

	own, err := s.service.CreateReferral(s.GetContext())
	s.Require().NoError(err)
	s.Require().False(own.HasReferrer())

	_, err = s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: code})
	s.Require().NoError(err)

	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.ReferralRepo = &staleReferralRepo{Repository: params.ReferralRepo, snapshot: own.Referral}
	racing := NewReferralService(params, NewLoyaltyService(params))

	_, err = racing.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: code})
	s.True(ierr.IsAlreadyExists(err), "conditional update rejects the second apply")

	referrer, err := s.GetStores().ReferralRepo.GetByAccount(s.GetContext(), referrerAccountID)
	s.Require().NoError(err)
	s.Equal(1, referrer.ReferralCount)

	balance, err := s.GetLoyaltyStore().GetBalance(s.GetContext(), referrerAccountID)
	s.Require().NoError(err)
	s.Equal(s.GetConfig().Referral.BonusPoints, balance.AvailablePoints)
}

func (s *ReferralServiceSuite) TestApplyCodeConcurrently() {
	code := s.referrerCode()
	_, err := s.service.CreateReferral(s.GetContext())
	s.Require().NoError(err)

	var applied atomic.Int32
	var wg conc.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Go(func() {
			if _, err := s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: code}); err == nil {
				applied.Add(1)
			}
		})
	}
	wg.Wait()

	s.Equal(int32(1), applied.Load())

	referrer, err := s.GetStores().ReferralRepo.GetByAccount(s.GetContext(), referrerAccountID)
	s.Require().NoError(err)
	s.Equal(1, referrer.ReferralCount)

	txs, err := s.GetLoyaltyStore().ListTransactions(s.GetContext(), referrerAccountID, 10)
	s.Require().NoError(err)
	s.Len(txs, 1)
}

func (s *ReferralServiceSuite) TestApplyCodeRejections() {
	code := s.referrerCode()

	_, err := s.service.ApplyCode(testutil.WithAccount(s.GetContext(), referrerAccountID), &dto.ApplyReferralRequest{Code: code})
	s.True(ierr.IsInvalidOperation(err), "own code")

	_, err = s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: "BSCNOPE00"})
	s.True(ierr.IsNotFound(err))

	_, err = s.service.ApplyCode(s.GetContext(), &dto.ApplyReferralRequest{Code: "  "})
	s.True(ierr.IsValidation(err))

	_, err = s.service.ApplyCode(testutil.SetupGuestContext(), &dto.ApplyReferralRequest{Code: code})
	s.True(ierr.IsUnauthenticated(err))
}
