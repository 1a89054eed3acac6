package utils

// ErrCode is a stable, wire-level error classification distinct from
// the human-readable message, so API consumers can switch on it.
type ErrCode string

const (
	ErrCodeValidation   ErrCode = "VALIDATION_ERROR"
	ErrCodeInternal     ErrCode = "INTERNAL_ERROR"
	ErrCodeOptimization ErrCode = "OPTIMIZATION_ERROR"
	ErrCodeCancelled    ErrCode = "CANCELLED"
)

// AppError is the error shape sent back to API clients.
type AppError struct {
	Code    ErrCode `json:"code"`
	Message string  `json:"message"`
	Details string  `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// NewAppError builds an AppError. details is optional; pass at most one.
func NewAppError(code ErrCode, message string, details ...string) *AppError {
	d := ""
	if len(details) > 0 {
		d = details[0]
	}
	return &AppError{Code: code, Message: message, Details: d}
}
