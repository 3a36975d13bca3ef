package v1

import (
	ierr "github.com/bestsenki/storefront/internal/errors"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into req and records a validation error on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Неверный формат запроса").
			Mark(ierr.ErrValidation))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Неверные параметры запроса").
			Mark(ierr.ErrValidation))
		return false
	}
	return true
}

// pathID returns the :id path parameter, recording a validation error when it is empty
func pathID(c *gin.Context, what string) (string, bool) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewErrorf("%s ID is required", what).
			WithHint("Неверный формат запроса").
			Mark(ierr.ErrValidation))
		return "", false
	}
	return id, true
}
