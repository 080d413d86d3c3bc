package dto

import "time"

// ErrorCode is the machine-readable code sent with every error response
type ErrorCode string

const (
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeValidationFailed      ErrorCode = "VAL_001"
	ErrorCodeInternalServer        ErrorCode = "SRV_001"
	// ErrorCodeStorageError: the change was applied but not saved.
	ErrorCodeStorageError ErrorCode = "SRV_002"
	// ErrorCodeStorageUnavailable: nothing was changed.
	ErrorCodeStorageUnavailable ErrorCode = "SRV_003"
)

// ErrorDetail describes one error. Field names the offending request field
// when there is one; Details carries every field error when there are several.
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"RES_002"`
	Message string      `json:"message" example:"course type already exists"`
	Field   string      `json:"field,omitempty" example:"name"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the envelope for failed requests
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: detail, Timestamp: time.Now()}
}

// FieldErrors collects one ErrorDetail per rejected request field
type FieldErrors []ErrorDetail

func (f *FieldErrors) Add(field, message string) {
	*f = append(*f, ErrorDetail{Code: ErrorCodeValidationFailed, Message: message, Field: field})
}
