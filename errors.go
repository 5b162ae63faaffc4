package soapserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeInvalidArgument  ErrorCode = "invalid_argument"
	CodeUnknownOperation ErrorCode = "unknown_operation"
	CodeMethodNotAllowed ErrorCode = "method_not_allowed"
	CodeConfiguration    ErrorCode = "configuration"
	CodeUnresolvable     ErrorCode = "unresolvable_type"
	CodeInternal         ErrorCode = "internal"
)

// Error is the standard error envelope surfaced at the request boundary.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new service error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new service error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// CastError reports a supplied value that cannot be converted to its
// declared parameter type.
type CastError struct {
	Value  any
	Target string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast %v to %s", e.Value, e.Target)
}

// UnknownOperationError reports a dispatch request naming an operation
// absent from the registry.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// MissingParametersError reports every required parameter absent from a
// dispatch request. Names keep the declared parameter order.
type MissingParametersError struct {
	Operation string
	Names     []string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("operation %q missing required parameters: %s",
		e.Operation, strings.Join(e.Names, ", "))
}

// UnresolvableTypeError reports a record or field type the schema resolver
// cannot introspect. It indicates a bug in the service definition, not in
// request input.
type UnresolvableTypeError struct {
	Name string
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("unresolvable type %q", e.Name)
}

// HandlerError wraps a failure raised by the operation's own logic,
// distinguishing it from validation failures at the dispatch boundary.
type HandlerError struct {
	Operation string
	Err       error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("operation %q failed: %v", e.Operation, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// ErrorTransformer is a function that maps an application error to a
// service error. If it returns nil, the default transformer logic is
// applied.
type ErrorTransformer func(error) *Error

// DefaultErrorTransformer maps the dispatch and resolution error types to
// service errors.
func DefaultErrorTransformer(err error) *Error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var unknownOp *UnknownOperationError
	if errors.As(err, &unknownOp) {
		return NewError(CodeUnknownOperation, unknownOp.Error())
	}

	var missing *MissingParametersError
	if errors.As(err, &missing) {
		return NewError(CodeInvalidArgument, missing.Error())
	}

	var cast *CastError
	if errors.As(err, &cast) {
		return NewError(CodeInvalidArgument, cast.Error())
	}

	var unresolvable *UnresolvableTypeError
	if errors.As(err, &unresolvable) {
		return NewError(CodeUnresolvable, unresolvable.Error())
	}

	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return NewError(CodeInternal, handlerErr.Error())
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &Error{
			Code:    CodeConfiguration,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	return NewError(CodeInternal, err.Error())
}

// HTTPStatus maps an ErrorCode to an HTTP status code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnknownOperation:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConfiguration, CodeUnresolvable, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// SOAPFaultCode maps an ErrorCode to the SOAP 1.1 fault code namespace:
// Client for request-side failures, Server for everything else.
func (c ErrorCode) SOAPFaultCode() string {
	switch c {
	case CodeInvalidArgument, CodeUnknownOperation, CodeMethodNotAllowed:
		return "Client"
	default:
		return "Server"
	}
}

// formatValidationError converts a validator.FieldError to a
// human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "min":
		return fmt.Sprintf("must have at least %s entries", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
