package soapserver

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/byjg/go-soap-server/testutil"
)

func TestNewServer(t *testing.T) {
	s := NewServer("Calculator", "urn:calculator")
	if s == nil {
		t.Fatal("expected non-nil server")
	}
	if s.ops == nil || s.records == nil {
		t.Error("expected maps to be initialized")
	}
}

func TestServer_BuilderChaining(t *testing.T) {
	transformer := func(err error) *Error {
		return NewError(CodeInternal, "transformed")
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	s := NewServer("Calculator", "urn:calculator").
		WithErrorTransformer(transformer).
		WithMaskInternalErrors().
		WithLogger(logger).
		WithContractCacheTTL(time.Minute)

	if s.errorTransformer == nil {
		t.Error("expected error transformer to be set")
	}
	if !s.maskInternalErrors {
		t.Error("expected maskInternalErrors to be true")
	}
	if s.logger != logger {
		t.Error("expected custom logger to be set")
	}
	if s.contractCacheTTL != time.Minute {
		t.Error("expected contract cache TTL to be set")
	}
}

func TestServer_DuplicateRegistrationWarns(t *testing.T) {
	var buf bytes.Buffer
	s := NewServer("Calculator", "urn:calculator").
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	op := NewOperation(func(ctx context.Context, args map[string]any) (any, error) { return nil, nil })
	s.Register("add", op)
	s.Register("add", op)

	if !strings.Contains(buf.String(), "duplicate operation registration") {
		t.Errorf("expected duplicate warning, got: %s", buf.String())
	}
	if len(s.opOrder) != 1 {
		t.Errorf("duplicate registration must not grow the order list: %v", s.opOrder)
	}
}

func TestServer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		server  func() *Server
		wantMsg string
	}{
		{
			name:    "missing name",
			server:  func() *Server { return NewServer("", "urn:x") },
			wantMsg: "service name is required",
		},
		{
			name:    "missing namespace",
			server:  func() *Server { return NewServer("X", "") },
			wantMsg: "service namespace is required",
		},
		{
			name:    "no operations",
			server:  func() *Server { return NewServer("X", "urn:x") },
			wantMsg: "no operations registered",
		},
		{
			name: "nil handler",
			server: func() *Server {
				s := NewServer("X", "urn:x")
				s.Register("op", &Operation{})
				return s
			},
			wantMsg: "has no handler",
		},
		{
			name: "occurrence bounds inverted",
			server: func() *Server {
				s := NewServer("X", "urn:x")
				s.Register("op", NewOperation(func(ctx context.Context, args map[string]any) (any, error) {
					return nil, nil
				}).ParamOccurs("p", Simple(String), 3, 1))
				return s
			},
			wantMsg: "minOccurs 3 exceeds maxOccurs 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server().Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestServer_ValidateOK(t *testing.T) {
	if err := newUserServer().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestHandler_WSDLEndpoint(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").WithQuery("wsdl", "").Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContentType(t, w, "text/xml")
	testutil.AssertWellFormedXML(t, w)
	testutil.AssertBodyContains(t, w, `<portType name="CalculatorPortType">`)
}

func TestHandler_DiscoEndpoint(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").WithQuery("disco", "").Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertWellFormedXML(t, w)
	testutil.AssertBodyContains(t, w, "contractRef")
	testutil.AssertBodyContains(t, w, "http://example.com/soap?wsdl")
}

func TestHandler_CallEndpoint(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").
		WithQuery("call", "add").
		WithQuery("a", "2").
		WithQuery("b", "3").
		Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := strings.TrimSpace(w.Body.String()); got != "5" {
		t.Errorf("call result = %q, want 5", got)
	}
}

func TestHandler_CallMissingParameter(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").
		WithQuery("call", "add").
		WithQuery("a", "2").
		Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	testutil.AssertBodyContains(t, w, "b")
}

func TestHandler_CallViaPostForm(t *testing.T) {
	req, w := testutil.NewRequest().POST("/soap").
		WithQuery("call", "add").
		WithForm("a", "7").
		WithForm("b", "8").
		Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := strings.TrimSpace(w.Body.String()); got != "15" {
		t.Errorf("call result = %q, want 15", got)
	}
}

func TestHandler_DocsDefault(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContentType(t, w, "text/html")
	testutil.AssertBodyContains(t, w, "add")
}

func TestHandler_ContractCacheControl(t *testing.T) {
	s := newCalcServer().WithContractCacheTTL(5 * time.Minute)
	req, w := testutil.NewRequest().GET("/soap").WithQuery("wsdl", "").Build()
	s.Handler().ServeHTTP(w, req)

	testutil.AssertHeader(t, w, "Cache-Control", "max-age=300")
}

func TestHandler_NoCacheControlByDefault(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").WithQuery("wsdl", "").Build()
	newCalcServer().Handler().ServeHTTP(w, req)

	testutil.AssertHeader(t, w, "Cache-Control", "")
}

func TestHandler_InvalidConfiguration(t *testing.T) {
	req, w := testutil.NewRequest().GET("/soap").WithQuery("wsdl", "").Build()
	NewServer("Empty", "urn:empty").Handler().ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	testutil.AssertBodyContains(t, w, "no operations registered")
}

func TestHandler_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	s := newCalcServer().WithMiddleware(mw("first")).WithMiddleware(mw("second"))
	req, w := testutil.NewRequest().GET("/soap").WithQuery("wsdl", "").Build()
	s.Handler().ServeHTTP(w, req)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func TestParseRequest_Intents(t *testing.T) {
	tests := []struct {
		name   string
		target string
		intent Intent
	}{
		{"bare wsdl flag", "/soap?wsdl", IntentWSDL},
		{"wsdl with value", "/soap?wsdl=1", IntentWSDL},
		{"disco flag", "/soap?disco", IntentDisco},
		{"call", "/soap?call=add", IntentInvoke},
		{"no flags", "/soap", IntentDocs},
		{"plain args only", "/soap?a=1", IntentDocs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := ParseRequest(httptest.NewRequest(http.MethodGet, tt.target, nil))
			if err != nil {
				t.Fatal(err)
			}
			if rc.Intent != tt.intent {
				t.Errorf("intent = %v, want %v", rc.Intent, tt.intent)
			}
		})
	}
}

func TestParseRequest_StripsReservedKeys(t *testing.T) {
	rc, err := ParseRequest(httptest.NewRequest(http.MethodGet, "/soap?call=add&a=1&b=2", nil))
	if err != nil {
		t.Fatal(err)
	}
	if rc.Operation != "add" {
		t.Errorf("operation = %q", rc.Operation)
	}
	if _, ok := rc.Args["call"]; ok {
		t.Error("reserved key leaked into arguments")
	}
	if rc.Args["a"] != "1" || rc.Args["b"] != "2" {
		t.Errorf("args = %v", rc.Args)
	}
}

func TestParseRequest_RepeatedValuesCollect(t *testing.T) {
	rc, err := ParseRequest(httptest.NewRequest(http.MethodGet, "/soap?call=list&tag=a&tag=b", nil))
	if err != nil {
		t.Fatal(err)
	}
	values, ok := rc.Args["tag"].([]string)
	if !ok || len(values) != 2 {
		t.Fatalf("tag = %#v, want two collected values", rc.Args["tag"])
	}
}

func TestParseRequest_BaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://svc.example/api/soap?wsdl", nil)
	rc, err := ParseRequest(req)
	if err != nil {
		t.Fatal(err)
	}
	if rc.BaseURL != "http://svc.example/api/soap" {
		t.Errorf("base url = %q", rc.BaseURL)
	}
	if rc.Scheme != "http" {
		t.Errorf("scheme = %q", rc.Scheme)
	}
}
