package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation",
			err:  NewError("bad promo").WithHint("Promo code not found").Mark(ErrValidation),
			want: http.StatusBadRequest,
		},
		{
			name: "unauthenticated",
			err:  NewError("no account").Mark(ErrUnauthenticated),
			want: http.StatusUnauthorized,
		},
		{
			name: "not found wrapped twice",
			err:  errors.Wrap(NewError("missing").Mark(ErrNotFound), "outer"),
			want: http.StatusNotFound,
		},
		{
			name: "rate limited",
			err:  NewError("slow down").Mark(ErrTooManyRequests),
			want: http.StatusTooManyRequests,
		},
		{
			name: "unmarked",
			err:  errors.New("plain"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestBuilderKeepsHintAndMark(t *testing.T) {
	err := WithError(errors.New("db down")).
		WithHint("Could not load balance").
		WithReportableDetails(map[string]any{"account_id": "u1"}).
		Mark(ErrDatabase)

	assert.True(t, errors.Is(err, ErrDatabase))
	assert.False(t, IsValidation(err))
	assert.Contains(t, errors.GetAllHints(err), "Could not load balance")
}
