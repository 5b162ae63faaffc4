// Package testutil provides testing helpers for HTTP handlers and
// soapserver services. This package is designed to be import-cycle safe
// and can be used from any package.
package testutil

import (
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// RequestBuilder helps construct test HTTP requests with a fluent API.
type RequestBuilder struct {
	method  string
	path    string
	body    string
	headers map[string]string
	query   url.Values
	form    url.Values
}

// NewRequest creates a new request builder.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		method:  "GET",
		path:    "/",
		headers: make(map[string]string),
		query:   make(url.Values),
		form:    make(url.Values),
	}
}

// GET sets the HTTP method to GET.
func (b *RequestBuilder) GET(path string) *RequestBuilder {
	b.method = "GET"
	b.path = path
	return b
}

// POST sets the HTTP method to POST.
func (b *RequestBuilder) POST(path string) *RequestBuilder {
	b.method = "POST"
	b.path = path
	return b
}

// WithQuery adds a query parameter. A value may repeat.
func (b *RequestBuilder) WithQuery(key, value string) *RequestBuilder {
	b.query.Add(key, value)
	return b
}

// WithForm adds a form-encoded body parameter and forces POST semantics.
func (b *RequestBuilder) WithForm(key, value string) *RequestBuilder {
	b.form.Add(key, value)
	return b
}

// WithBody sets the raw request body.
func (b *RequestBuilder) WithBody(body string) *RequestBuilder {
	b.body = body
	return b
}

// WithHeader adds a header to the request.
func (b *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	b.headers[key] = value
	return b
}

// Build creates the HTTP request and ResponseRecorder.
func (b *RequestBuilder) Build() (*http.Request, *httptest.ResponseRecorder) {
	path := b.path
	if len(b.query) > 0 {
		path += "?" + b.query.Encode()
	}

	body := b.body
	if len(b.form) > 0 {
		body = b.form.Encode()
		b.headers["Content-Type"] = "application/x-www-form-urlencoded"
	}

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(b.method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(b.method, path, nil)
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	return req, httptest.NewRecorder()
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()
	if w.Code != expectedStatus {
		t.Errorf("expected status %d, got %d\nBody: %s", expectedStatus, w.Code, w.Body.String())
	}
}

// AssertContentType checks that the Content-Type header contains the
// expected value.
func AssertContentType(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	actual := w.Header().Get("Content-Type")
	if !strings.Contains(actual, expected) {
		t.Errorf("expected Content-Type to contain %q, got %q", expected, actual)
	}
}

// AssertHeader checks that a response header has the expected value.
func AssertHeader(t *testing.T, w *httptest.ResponseRecorder, key, expectedValue string) {
	t.Helper()
	actual := w.Header().Get(key)
	if actual != expectedValue {
		t.Errorf("expected header %s=%s, got %s", key, expectedValue, actual)
	}
}

// AssertBodyContains checks that the response body contains the expected
// substring.
func AssertBodyContains(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), expected) {
		t.Errorf("expected body to contain %q\nBody: %s", expected, w.Body.String())
	}
}

// AssertWellFormedXML checks that the response body parses as XML.
func AssertWellFormedXML(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(w.Body.String()))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("response is not well-formed XML: %v\nBody: %s", err, w.Body.String())
		}
	}
}
