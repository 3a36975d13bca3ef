package dto

import (
	"github.com/bestsenki/storefront/internal/domain/loyalty"
)

type LoyaltyResponse struct {
	AvailablePoints int64                  `json:"available_points"`
	TotalEarned     int64                  `json:"total_earned"`
	TotalSpent      int64                  `json:"total_spent"`
	Transactions    []*loyalty.Transaction `json:"transactions"`
}

func NewLoyaltyResponse(b *loyalty.Balance, txs []*loyalty.Transaction) *LoyaltyResponse {
	if txs == nil {
		txs = []*loyalty.Transaction{}
	}
	return &LoyaltyResponse{
		AvailablePoints: b.AvailablePoints,
		TotalEarned:     b.TotalEarned,
		TotalSpent:      b.TotalSpent,
		Transactions:    txs,
	}
}
