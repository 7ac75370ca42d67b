package code

// Error code to message mapping
var codeMessageMap = map[int]string{
	// Common error codes
	ErrSuccess:          "success",
	ErrUnknown:          "unknown error",
	ErrBind:             "request body binding failed",
	ErrValidation:       "request parameter validation failed",
	ErrTokenInvalid:     "invalid authentication token",
	ErrPermissionDenied: "not permitted",
	ErrTooManyRequests:  "too many requests",

	// User account error codes
	ErrUserNotFound:          "user does not exist",
	ErrUserAlreadyExist:      "user already exists",
	ErrUserPasswordIncorrect: "incorrect username or password",
	ErrUserSelfDelete:        "cannot delete your own account",

	// Machine and safety device error codes
	ErrMachineNotFound: "machine does not exist",
	ErrDeviceNotFound:  "safety device does not exist",

	// Test record error codes
	ErrTestRecordNotFound: "test record does not exist",
	ErrTestResultInvalid:  "test result must be PASS or FAIL",

	// Incident report error codes
	ErrReportNotFound: "incident report does not exist",
	ErrReportInvalid:  "incident report failed validation",

	// Storage error codes
	ErrDatabase:         "database error",
	ErrRecordNotFound:   "record does not exist",
	ErrStoreUnavailable: "store unavailable, retry later",
}

// Error code to HTTP status mapping
var codeStatusMap = map[int]int{
	// Common error codes
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// User account error codes
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,
	ErrUserSelfDelete:        StatusBadRequest,

	// Machine and safety device error codes
	ErrMachineNotFound: StatusNotFound,
	ErrDeviceNotFound:  StatusNotFound,

	// Test record error codes
	ErrTestRecordNotFound: StatusNotFound,
	ErrTestResultInvalid:  StatusBadRequest,

	// Incident report error codes
	ErrReportNotFound: StatusNotFound,
	ErrReportInvalid:  StatusBadRequest,

	// Storage error codes
	ErrDatabase:         StatusInternalServerError,
	ErrRecordNotFound:   StatusNotFound,
	ErrStoreUnavailable: StatusInternalServerError,
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
