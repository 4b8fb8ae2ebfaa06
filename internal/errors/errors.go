package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUsernameTaken is returned when the username belongs to another user.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrForbidden is returned when the acting user's role does not permit the operation.
	ErrForbidden = errors.New("you're not authorized to perform this operation")
	// ErrInvalidToken is returned when a bearer token is missing, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAssessmentNotFound is returned when the referenced assessment does not exist.
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrPasswordTooShort is returned when a plaintext password is shorter than 8 characters.
	ErrPasswordTooShort = errors.New("password length must be greater than 7")
	// ErrPasswordMismatch is returned when new and confirm passwords differ.
	ErrPasswordMismatch = errors.New("new password and confirm password must be same")
	// ErrInvalidRole is returned when a role is neither student nor teacher.
	ErrInvalidRole = errors.New("role must be student or teacher")
	// ErrDuplicateSubmission is returned when the student already submitted for the assessment.
	ErrDuplicateSubmission = errors.New("assessment already submitted")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage failures fall
// through to a generic 500 so internal details never reach the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrInvalidToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrAssessmentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ASSESSMENT_NOT_FOUND")
	case ErrPasswordTooShort:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_TOO_SHORT")
	case ErrPasswordMismatch:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case ErrInvalidRole:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case ErrDuplicateSubmission:
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_SUBMISSION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
