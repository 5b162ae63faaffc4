package soapserver

import (
	"context"
	"net/http"
)

// Intent is the already-extracted purpose of an inbound request.
type Intent int

const (
	// IntentDocs renders the human-readable documentation page.
	IntentDocs Intent = iota
	// IntentWSDL fetches the service contract.
	IntentWSDL
	// IntentDisco fetches the discovery document.
	IntentDisco
	// IntentInvoke dispatches a named operation.
	IntentInvoke
)

// RequestContext carries only the request fields the core needs, already
// extracted by the transport layer: the intent, the named operation and
// its raw argument map for invocations, and the externally visible base
// URL with the query string stripped.
type RequestContext struct {
	Intent    Intent
	Operation string
	Args      map[string]any
	BaseURL   string
	Scheme    string
}

type contextKey struct {
	name string
}

var (
	requestKey   = &contextKey{"request"}
	writerKey    = &contextKey{"writer"}
	operationKey = &contextKey{"operation"}
)

// OperationInfo identifies the operation being dispatched, for
// interceptors and handlers.
type OperationInfo struct {
	Service   string
	Operation string
}

// RequestFromContext returns the HTTP request from the context, when the
// handler was invoked through Server.Handler.
func RequestFromContext(ctx context.Context) *http.Request {
	if r, ok := ctx.Value(requestKey).(*http.Request); ok {
		return r
	}
	return nil
}

// SetHeader sets an HTTP response header. It requires that the handler
// was called via Server.Handler.
func SetHeader(ctx context.Context, key, value string) {
	if w, ok := ctx.Value(writerKey).(http.ResponseWriter); ok {
		w.Header().Set(key, value)
	}
}

// OperationFromContext returns the service and operation name of the
// current dispatch.
func OperationFromContext(ctx context.Context) (service, operation string, ok bool) {
	if info, ok := ctx.Value(operationKey).(*OperationInfo); ok {
		return info.Service, info.Operation, true
	}
	return "", "", false
}

func newContext(ctx context.Context, w http.ResponseWriter, r *http.Request, info *OperationInfo) context.Context {
	ctx = context.WithValue(ctx, writerKey, w)
	ctx = context.WithValue(ctx, requestKey, r)
	ctx = context.WithValue(ctx, operationKey, info)
	return ctx
}
