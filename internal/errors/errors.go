package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeWrongPassword = "WRONG_PASSWORD"
	ErrCodeTokenError    = "TOKEN_ERROR"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeDBFailure     = "DB_FAILURE"
	ErrCodeServerFailure = "SERVER_FAILURE"
)

// APIError is the structured error body returned to clients, wrapped in an
// "error" envelope.
type APIError struct {
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
	Code    string      `json:"code"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, gin.H{"error": err})
}

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Message string `json:"message"`
	Loc     string `json:"loc"`
	Input   string `json:"input,omitempty"`
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, details string) {
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, "Authorization failed", details))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message, details string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeBadRequest, message, details))
}

// WrongPassword sends a 400 response with the password-specific code
func WrongPassword(c *gin.Context, details string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeWrongPassword, "Password is incorrect", details))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, details string) {
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, "Value not found", details))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message, details string) {
	if message == "" {
		message = "Resource already exists"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeAlreadyExists, message, details))
}

// TokenError sends a 500 response for token signing failures
func TokenError(c *gin.Context, details string) {
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeTokenError, "Failed to create JWT token", details))
}

// DBFailure sends a 500 response for retryable datastore overload
func DBFailure(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeDBFailure,
		"Database failed",
		"There are too many requests, please try again later"))
}

// ServerFailure sends a generic 500 response. Internal details are never
// leaked to the client on this path.
func ServerFailure(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeServerFailure,
		"Server failed to process the request",
		"Something bad happened in the server, please try again later"))
}

// BindError maps a request-binding failure to a response. Validator errors
// become a 422 with a field-level error list; anything else (malformed JSON,
// wrong types) becomes a 400.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Message: validationMessage(fe),
				Loc:     fe.Field(),
			})
		}
		RespondWithError(c, http.StatusUnprocessableEntity, &APIError{
			Code:    ErrCodeInvalidInput,
			Message: "Input validation failed",
			Details: "Please make sure your input has required fields with their correct type",
			Errors:  fields,
		})
		return
	}

	BadRequest(c, "Invalid request body", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "email":
		return "value is not a valid email address"
	default:
		return "value failed validation rule '" + fe.Tag() + "'"
	}
}
