package dto

import "strconv"

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	Take  int   `json:"take"`
	Skip  int   `json:"skip"`
	Count int64 `json:"count"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data interface{}, take, skip int, count int64) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Take:  take,
			Skip:  skip,
			Count: count,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the
// request ID for correlation.
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// ValidationDetail describes a single field validation failure
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorInfo is the error payload for validation failures
type ValidationErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationErrorResponse is the response envelope for validation failures
type ValidationErrorResponse struct {
	Success bool                `json:"success"`
	Error   ValidationErrorInfo `json:"error"`
}

// NewValidationErrorResponse creates a validation error response with
// per-field details.
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ValidationErrorResponse {
	return ValidationErrorResponse{
		Success: false,
		Error: ValidationErrorInfo{
			Code:      ErrCodeValidation,
			Message:   message,
			RequestID: requestID,
			Details:   details,
		},
	}
}

// PageRequest carries the raw take/skip pagination query parameters.
// Out-of-range and malformed values are sanitized through Window rather
// than rejected, so a bad page request never fails validation.
type PageRequest struct {
	Take string `form:"take"`
	Skip string `form:"skip"`
}

// Window resolves the raw parameters against a default and maximum page
// size. A missing or non-numeric take falls back to def; numeric values
// are clamped into [1, max]. A skip that is missing, non-numeric, or not
// positive behaves as 0.
func (p PageRequest) Window(def, max int) (take, skip int) {
	take = def
	if v, err := strconv.Atoi(p.Take); err == nil {
		take = v
		if take < 1 {
			take = 1
		}
		if take > max {
			take = max
		}
	}
	if v, err := strconv.Atoi(p.Skip); err == nil && v > 0 {
		skip = v
	}
	return take, skip
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
