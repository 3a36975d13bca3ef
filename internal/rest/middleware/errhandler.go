package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bestsenki/storefront/internal/errors"
	"github.com/bestsenki/storefront/internal/logger"
	"github.com/bestsenki/storefront/internal/types"
	cerrors "github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

const safeDetailsPrefix = "__json__:"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler renders the last error added with c.Error. The message is the
// first hint on the chain; internal error text never reaches the client.
func ErrorHandler(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := errors.HTTPStatusFromErr(err)
		requestID := types.GetRequestID(c.Request.Context())

		if status >= http.StatusInternalServerError {
			logger.Errorw("request failed",
				"error", err,
				"status", status,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", requestID,
			)
		}

		c.JSON(status, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Display: displayMessage(err),
				Details: safeDetails(err),
			},
			RequestID: requestID,
		})
	}
}

func displayMessage(err error) string {
	// GetAllHints is post-order: the outermost hint comes first
	for _, hint := range cerrors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "Произошла непредвиденная ошибка"
}

func safeDetails(err error) map[string]any {
	details := make(map[string]any)
	for _, sdp := range cerrors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			raw, ok := strings.CutPrefix(payload, safeDetailsPrefix)
			if !ok {
				continue
			}
			var m map[string]any
			if json.Unmarshal([]byte(raw), &m) == nil {
				for k, v := range m {
					details[k] = v
				}
			}
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
