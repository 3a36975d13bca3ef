package validator

import (
	"testing"

	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,min=6"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	require.NoError(t, ValidateRequest(contactRequest{Email: "a@b.kg"}))

	err := ValidateRequest(contactRequest{Email: "nope", Phone: "1"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
