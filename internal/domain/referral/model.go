package referral

import (
	"crypto/rand"
	"math/big"
	"strings"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/types"
	"github.com/shopspring/decimal"
)

const (
	CodePrefix   = "BSC"
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Referral is an account's referral record. ReferredBy points at the
// referrer's record ID, not the referrer's account ID.
type Referral struct {
	ID            string          `db:"id" json:"id"`
	AccountID     string          `db:"user_id" json:"account_id"`
	Code          string          `db:"referral_code" json:"referral_code"`
	ReferredBy    *string         `db:"referred_by" json:"referred_by,omitempty"`
	ReferralCount int             `db:"referral_count" json:"referral_count"`
	BonusEarned   decimal.Decimal `db:"bonus_earned" json:"bonus_earned" swaggertype:"string"`
	types.BaseModel
}

// HasReferrer reports whether this account already used someone's code
func (r *Referral) HasReferrer() bool {
	return r.ReferredBy != nil && *r.ReferredBy != ""
}

// RecordReferral bumps the referrer's counters for one new referred account
func (r *Referral) RecordReferral(bonus decimal.Decimal) {
	r.ReferralCount++
	r.BonusEarned = r.BonusEarned.Add(bonus)
}

// GenerateCode returns BSC followed by six characters of A-Z0-9
func GenerateCode() string {
	var sb strings.Builder
	sb.WriteString(CodePrefix)
	alphabetSize := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			panic("failed to read random source: " + err.Error())
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String()
}

// NormalizeCode trims and upper-cases a user-entered code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckApplicable validates that account may use referrer's code given its
// own existing record (nil when it has none).
func CheckApplicable(accountID string, referrer, existing *Referral) error {
	if referrer.AccountID == accountID {
		return ierr.NewError("cannot apply own referral code").
			WithHint("Нельзя использовать собственный код").
			Mark(ierr.ErrInvalidOperation)
	}
	if existing != nil && existing.HasReferrer() {
		return ErrAlreadyReferred(existing.ID)
	}
	return nil
}

// ErrAlreadyReferred is returned when a referral record already has a referrer
func ErrAlreadyReferred(referralID string) error {
	return ierr.NewError("account already referred").
		WithHint("Вы уже использовали реферальный код").
		WithReportableDetails(map[string]any{
			"referral_id": referralID,
		}).
		Mark(ierr.ErrAlreadyExists)
}
