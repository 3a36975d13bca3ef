package referral

import (
	"regexp"
	"testing"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^BSC[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, GenerateCode())
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "BSCAB12CD", NormalizeCode("  bscab12cd "))
}

func TestCheckApplicable(t *testing.T) {
	referrer := &Referral{ID: "ref_1", AccountID: "acc_referrer", Code: "BSC000001"}

	tests := []struct {
		name      string
		accountID string
		existing  *Referral
		check     func(error) bool
	}{
		{name: "fresh account", accountID: "acc_new"},
		{name: "existing record without referrer", accountID: "acc_new", existing: &Referral{ID: "ref_2"}},
		{name: "own code", accountID: "acc_referrer", check: ierr.IsInvalidOperation},
		{name: "already referred", accountID: "acc_new", existing: &Referral{ID: "ref_2", ReferredBy: lo.ToPtr("ref_9")}, check: ierr.IsAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckApplicable(tt.accountID, referrer, tt.existing)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}

func TestRecordReferral(t *testing.T) {
	r := &Referral{ReferralCount: 2, BonusEarned: decimal.NewFromInt(200)}
	r.RecordReferral(decimal.NewFromInt(100))
	assert.Equal(t, 3, r.ReferralCount)
	assert.True(t, decimal.NewFromInt(300).Equal(r.BonusEarned))
}
