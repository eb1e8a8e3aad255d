package apierror

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error type returned by the service layer. It carries
// the HTTP status code to answer with, and marshals directly as the response
// body.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *simpleError) Code() int {
	return e.Status
}

func (e *simpleError) Error() string {
	return e.Message
}

func NewSimple(status int, message string) ErrorResponse {
	return &simpleError{Status: status, Message: message}
}

var (
	InternalServerError    = NewSimple(500, "Something went wrong on our side")
	NotFoundError          = NewSimple(404, "Resource not found")
	MalformedBodyError     = NewSimple(400, "Could not understand request body")
	InvalidAuthTokenError  = NewSimple(401, "Missing or invalid authorization token")
	UnauthenticatedError   = NewSimple(401, "User not authenticated")
	UserAlreadyExistsError = NewSimple(409, "A user with this email already exists")

	// Conditions surfaced by the identity provider.
	IDPUserNotFoundError        = NewSimple(404, "No account found for this email")
	IDPCredentialsMismatchError = NewSimple(401, "Email and password do not match")
	IDPUserNotConfirmedError    = NewSimple(403, "Account email is not confirmed yet")
	IDPInvalidPasswordError     = NewSimple(400, "Password does not meet the account policy")
	IDPExistingEmailError       = NewSimple(409, "This email is already registered")
	IDPConfirmCodeMismatchError = NewSimple(400, "Confirmation code does not match")
	IDPConfirmCodeExpiredError  = NewSimple(400, "Confirmation code has expired")

	// Booking conditions.
	SlotNotAvailableError = NewSimple(409, "The selected time slot is no longer available")
	SessionInPastError    = NewSimple(400, "Session time must be in the future")
)

func NewMissingParamError(param string) ErrorResponse {
	return NewSimple(400, fmt.Sprintf("Missing required parameter: %s", param))
}

func NewInvalidParamTypeError(param, expected string) ErrorResponse {
	return NewSimple(400, fmt.Sprintf("Parameter %s must be of type %s", param, expected))
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type validationError struct {
	Message string       `json:"error"`
	Fields  []fieldError `json:"fields"`
}

func (e *validationError) Code() int {
	return 400
}

func (e *validationError) Error() string {
	return e.Message
}

// FromValidationError converts validator errors into a 400 response listing
// the offending fields and the rule each one broke.
func FromValidationError(err error) ErrorResponse {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return MalformedBodyError
	}

	fields := make([]fieldError, len(verrs))
	for i, verr := range verrs {
		fields[i] = fieldError{Field: verr.Field(), Rule: verr.Tag()}
	}
	return &validationError{Message: "Request validation failed", Fields: fields}
}
