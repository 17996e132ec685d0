package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgInvalidID          = "Invalid id"
	ErrMsgNotFound           = "Not found"
	ErrMsgInternal           = "Internal server error"
	ErrMsgValidation         = "Validation failed"
)
