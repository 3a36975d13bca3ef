package dto

// SuccessResponse acknowledges a write that has no body of its own
type SuccessResponse struct {
	Message string `json:"message"`
}
