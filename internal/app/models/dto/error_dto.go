package dto

// ErrorCode represents error code in responses
type ErrorCode string

// Error code constants
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeTokenExpired       ErrorCode = "AUTH_002"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"
	ErrorCodeForbidden          ErrorCode = "AUTH_005"

	// Resource errors
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeResourceExists   ErrorCode = "RES_002"
	ErrorCodeResourceInUse    ErrorCode = "RES_003"

	// Occupancy errors
	ErrorCodeRoomFull      ErrorCode = "OCC_001"
	ErrorCodeAlreadyBooked ErrorCode = "OCC_002"
	ErrorCodeNotCheckedIn  ErrorCode = "OCC_003"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeServerError ErrorCode = "SRV_001"
)

// ErrorSeverity indicates how serious an error is
type ErrorSeverity string

// Severity constants
const (
	SeverityWarning ErrorSeverity = "warning"
	SeverityError   ErrorSeverity = "error"
)

// ErrorDetail contains detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"RES_001"`
	Message  string        `json:"message" example:"Resource not found"`
	Field    string        `json:"field,omitempty" example:"email"`
	Severity ErrorSeverity `json:"severity,omitempty" example:"error"`
	Details  interface{}   `json:"details,omitempty"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: SeverityError,
	}
}

// WithField attaches the offending field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches arbitrary structured details to the error detail
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithSeverity overrides the default severity
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// ValidationError describes a single failed validation rule
type ValidationError struct {
	Field   string `json:"field" example:"capacity"`
	Message string `json:"message" example:"must be greater than zero"`
}
