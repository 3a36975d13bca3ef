package service

import (
	"testing"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/testutil"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LoyaltyServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LoyaltyService
}

func TestLoyaltyService(t *testing.T) {
	suite.Run(t, new(LoyaltyServiceSuite))
}

func (s *LoyaltyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLoyaltyService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *LoyaltyServiceSuite) TestGetLoyalty() {
	s.GetLoyaltyStore().Seed(testutil.DefaultAccountID, 200)
	_, err := s.service.EarnForOrder(s.GetContext(), testutil.DefaultAccountID, "ord_1", decimal.NewFromInt(2599))
	s.Require().NoError(err)

	resp, err := s.service.GetLoyalty(s.GetContext())
	s.Require().NoError(err)
	s.Equal(int64(225), resp.AvailablePoints)
	s.Require().Len(resp.Transactions, 1)
	s.Equal(types.LoyaltyTransactionEarned, resp.Transactions[0].Type)

	_, err = s.service.GetLoyalty(testutil.SetupGuestContext())
	s.True(ierr.IsUnauthenticated(err))
}

func (s *LoyaltyServiceSuite) TestEarnRoundsDown() {
	points, err := s.service.EarnForOrder(s.GetContext(), testutil.DefaultAccountID, "ord_1", decimal.NewFromInt(99))
	s.Require().NoError(err)
	s.Equal(int64(0), points)

	txs, err := s.GetLoyaltyStore().ListTransactions(s.GetContext(), testutil.DefaultAccountID, 10)
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *LoyaltyServiceSuite) TestSpendForOrder() {
	store := s.GetLoyaltyStore()
	store.Seed(testutil.DefaultAccountID, 100)

	s.Require().NoError(s.service.SpendForOrder(s.GetContext(), testutil.DefaultAccountID, "ord_1", 0))
	s.Require().NoError(s.service.SpendForOrder(s.GetContext(), testutil.DefaultAccountID, "ord_1", 60))

	balance, err := store.GetBalance(s.GetContext(), testutil.DefaultAccountID)
	s.Require().NoError(err)
	s.Equal(int64(40), balance.AvailablePoints)

	err = s.service.SpendForOrder(s.GetContext(), testutil.DefaultAccountID, "ord_2", 60)
	s.Error(err)
}

func (s *LoyaltyServiceSuite) TestFetchBalanceGivesUpAfterOneRetry() {
	store := s.GetLoyaltyStore()
	store.FailGetBalance = 5

	_, err := s.service.FetchBalance(s.GetContext(), testutil.DefaultAccountID)
	s.Error(err)
	s.True(ierr.IsHTTPClient(err))
	s.Equal(2, store.GetBalanceCalls)
}
