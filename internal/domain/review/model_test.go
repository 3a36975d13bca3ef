package review

import (
	"strings"
	"testing"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		review  Review
		wantErr bool
	}{
		{"valid without comment", Review{Handle: "roses", Rating: 5}, false},
		{"valid with comment", Review{Handle: "roses", Rating: 1, Comment: lo.ToPtr("Завяли")}, false},
		{"missing handle", Review{Handle: " ", Rating: 4}, true},
		{"rating too low", Review{Handle: "roses", Rating: 0}, true},
		{"rating too high", Review{Handle: "roses", Rating: 6}, true},
		{"comment too long", Review{Handle: "roses", Rating: 3, Comment: lo.ToPtr(strings.Repeat("я", MaxCommentLength+1))}, true},
		{"comment at limit", Review{Handle: "roses", Rating: 3, Comment: lo.ToPtr(strings.Repeat("я", MaxCommentLength))}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.Average.IsZero())

	s := Summarize([]*Review{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Average.Equal(decimal.RequireFromString("4.3")), s.Average.String())
}
