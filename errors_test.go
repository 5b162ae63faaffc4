package soapserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewError(t *testing.T) {
	err := NewError(CodeInvalidArgument, "bad input")
	if err.Code != CodeInvalidArgument {
		t.Errorf("code = %q", err.Code)
	}
	if err.Error() != "invalid_argument: bad input" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(CodeInternal, "op %q broke", "add")
	if err.Message != `op "add" broke` {
		t.Errorf("message = %q", err.Message)
	}
}

func TestError_WithDetail(t *testing.T) {
	base := NewError(CodeConfiguration, "bad spec")
	detailed := base.WithDetail("operation", "add").WithDetail("field", "a")

	if len(base.Details) != 0 {
		t.Error("WithDetail must not mutate the original error")
	}
	if detailed.Details["operation"] != "add" || detailed.Details["field"] != "a" {
		t.Errorf("details = %v", detailed.Details)
	}
}

func TestDefaultErrorTransformer(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{
			name:     "unknown operation",
			err:      &UnknownOperationError{Name: "divide"},
			wantCode: CodeUnknownOperation,
		},
		{
			name:     "missing parameters",
			err:      &MissingParametersError{Operation: "add", Names: []string{"b"}},
			wantCode: CodeInvalidArgument,
		},
		{
			name:     "cast failure",
			err:      &CastError{Value: "ten", Target: "int"},
			wantCode: CodeInvalidArgument,
		},
		{
			name:     "unresolvable type",
			err:      &UnresolvableTypeError{Name: "Ghost"},
			wantCode: CodeUnresolvable,
		},
		{
			name:     "handler failure",
			err:      &HandlerError{Operation: "add", Err: errors.New("boom")},
			wantCode: CodeInternal,
		},
		{
			name:     "plain error",
			err:      errors.New("something"),
			wantCode: CodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultErrorTransformer(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestDefaultErrorTransformer_Nil(t *testing.T) {
	if got := DefaultErrorTransformer(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestDefaultErrorTransformer_PreservesServiceError(t *testing.T) {
	// A handler that returns *Error directly must keep its code and
	// message even though dispatch wraps handler failures.
	appErr := NewError(CodeInvalidArgument, "quantity must be positive")
	wrapped := &HandlerError{Operation: "order", Err: fmt.Errorf("place: %w", appErr)}

	got := DefaultErrorTransformer(wrapped)
	if got != appErr {
		t.Errorf("got %v, want the application's own error", got)
	}
}

func TestDefaultErrorTransformer_MissingParameterMessage(t *testing.T) {
	err := &MissingParametersError{Operation: "add", Names: []string{"a", "b"}}
	got := DefaultErrorTransformer(err)
	want := `operation "add" missing required parameters: a, b`
	if got.Message != want {
		t.Errorf("message = %q, want %q", got.Message, want)
	}
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnknownOperation, http.StatusNotFound},
		{CodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{CodeConfiguration, http.StatusInternalServerError},
		{CodeUnresolvable, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
		{ErrorCode("mystery"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestErrorCode_SOAPFaultCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{CodeInvalidArgument, "Client"},
		{CodeUnknownOperation, "Client"},
		{CodeMethodNotAllowed, "Client"},
		{CodeConfiguration, "Server"},
		{CodeUnresolvable, "Server"},
		{CodeInternal, "Server"},
	}
	for _, tt := range tests {
		if got := tt.code.SOAPFaultCode(); got != tt.want {
			t.Errorf("%s.SOAPFaultCode() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestServer_MaskInternalErrors(t *testing.T) {
	s := NewServer("X", "urn:x").WithMaskInternalErrors()
	got := s.transform(errors.New("database password rejected"))
	if got.Message != "internal server error" {
		t.Errorf("masked message = %q", got.Message)
	}
	if got.Code != CodeInternal {
		t.Errorf("masked code = %q", got.Code)
	}
}

func TestServer_CustomTransformer(t *testing.T) {
	s := NewServer("X", "urn:x").WithErrorTransformer(func(err error) *Error {
		if err.Error() == "special" {
			return NewError(CodeMethodNotAllowed, "handled")
		}
		return nil
	})

	if got := s.transform(errors.New("special")); got.Code != CodeMethodNotAllowed {
		t.Errorf("custom transformer skipped: %v", got)
	}
	// nil from the custom transformer falls through to the default.
	if got := s.transform(&UnknownOperationError{Name: "x"}); got.Code != CodeUnknownOperation {
		t.Errorf("fallback to default transformer failed: %v", got)
	}
}
