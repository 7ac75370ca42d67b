package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusBadRequest - 400: malformed request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: not authenticated.
	StatusUnauthorized = 401
	// StatusForbidden - 403: not permitted.
	StatusForbidden = 403
	// StatusNotFound - 404: resource does not exist.
	StatusNotFound = 404
	// StatusInternalServerError - 500: internal server error.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: too many requests.
	StatusTooManyRequests = 429
)

// Common error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding failed.
	ErrBind
	// ErrValidation - 400: request parameter validation failed.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: role lacks permission for the action.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
)

// User account error codes (101xxx).
const (
	// ErrUserNotFound - 404: user does not exist.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: user already exists.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: wrong password.
	ErrUserPasswordIncorrect
	// ErrUserSelfDelete - 400: cannot delete own account.
	ErrUserSelfDelete
)

// Machine and safety device error codes (102xxx).
const (
	// ErrMachineNotFound - 404: machine does not exist.
	ErrMachineNotFound int = iota + 102000
	// ErrDeviceNotFound - 404: safety device does not exist.
	ErrDeviceNotFound
)

// Test record error codes (103xxx).
const (
	// ErrTestRecordNotFound - 404: test record does not exist.
	ErrTestRecordNotFound int = iota + 103000
	// ErrTestResultInvalid - 400: test result must be PASS or FAIL.
	ErrTestResultInvalid
)

// Incident report error codes (104xxx).
const (
	// ErrReportNotFound - 404: incident report does not exist.
	ErrReportNotFound int = iota + 104000
	// ErrReportInvalid - 400: incident report failed validation.
	ErrReportInvalid
)

// Storage error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: record does not exist.
	ErrRecordNotFound
	// ErrStoreUnavailable - 500: backing store unreachable, retryable.
	ErrStoreUnavailable
)
