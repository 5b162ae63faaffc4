// Package soapserver exposes application operations as SOAP/WSDL
// operations and simple HTTP-form operations. The service contract
// (WSDL), the DISCO discovery document, and the documentation model are
// generated from declarative operation and record metadata registered on
// a Server.
package soapserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

// Server is the central registry for a SOAP service. It owns the
// operation and record declarations, which are immutable once serving
// starts; contract generation and dispatch read them concurrently with
// no coordination beyond the registration lock.
// Use Handler() to get an http.Handler for use with http.ListenAndServe.
type Server struct {
	mu                 sync.RWMutex
	name               string
	namespace          string
	ops                map[string]*Operation
	opOrder            []string
	records            map[string]*RecordType
	errorTransformer   ErrorTransformer
	maskInternalErrors bool
	interceptors       []UnaryInterceptor
	middlewares        []func(http.Handler) http.Handler
	logger             *slog.Logger
	contractCacheTTL   time.Duration
}

// NewServer creates a service registry with the given service name and
// type namespace.
func NewServer(name, namespace string) *Server {
	return &Server{
		name:      name,
		namespace: namespace,
		ops:       make(map[string]*Operation),
		records:   make(map[string]*RecordType),
	}
}

// WithErrorTransformer adds a custom error transformer.
// It returns the server for chaining.
func (s *Server) WithErrorTransformer(fn ErrorTransformer) *Server {
	s.errorTransformer = fn
	return s
}

// WithMaskInternalErrors enables masking of internal error messages.
// This is useful in production to avoid leaking sensitive information.
func (s *Server) WithMaskInternalErrors() *Server {
	s.maskInternalErrors = true
	return s
}

// WithUnaryInterceptor adds a global interceptor. Global interceptors are
// executed before per-operation interceptors; within each level,
// interceptors execute in the order they were added.
func (s *Server) WithUnaryInterceptor(i UnaryInterceptor) *Server {
	s.interceptors = append(s.interceptors, i)
	return s
}

// WithMiddleware adds an HTTP middleware to wrap the server.
// Middleware is applied in the order added (first added is outermost).
func (s *Server) WithMiddleware(mw func(http.Handler) http.Handler) *Server {
	s.middlewares = append(s.middlewares, mw)
	return s
}

// WithLogger sets a custom logger for the server.
// If not set, slog.Default() will be used.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.logger = logger
	return s
}

// WithContractCacheTTL sets a Cache-Control max-age on contract and
// discovery responses. Zero (the default) disables the header.
func (s *Server) WithContractCacheTTL(d time.Duration) *Server {
	s.contractCacheTTL = d
	return s
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Register registers an operation under the given name. If an operation
// is already registered with this name it is replaced and a warning is
// logged.
func (s *Server) Register(name string, op *Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op.spec.Name = name
	if _, exists := s.ops[name]; exists {
		s.log().Warn("duplicate operation registration",
			slog.String("service", s.name),
			slog.String("operation", name))
	} else {
		s.opOrder = append(s.opOrder, name)
	}
	s.ops[name] = op
}

// RegisterRecord registers a record type descriptor. Records referenced
// by parameters, returns, or other records' fields must be registered
// before the first contract request.
func (s *Server) RegisterRecord(rec *RecordType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[rec.Name]; exists {
		s.log().Warn("duplicate record registration",
			slog.String("service", s.name),
			slog.String("record", rec.Name))
	}
	s.records[rec.Name] = rec
}

// Validate checks the declared contract metadata. It is the startup
// gate: a service with no name, no namespace, or no operations cannot
// serve, and malformed specs are configuration bugs. Call it once after
// registration, before serving.
func (s *Server) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.name == "" {
		return NewError(CodeConfiguration, "service name is required")
	}
	if s.namespace == "" {
		return NewError(CodeConfiguration, "service namespace is required")
	}
	if len(s.ops) == 0 {
		return NewError(CodeConfiguration, "no operations registered")
	}
	for _, name := range s.opOrder {
		op := s.ops[name]
		if op.fn == nil {
			return Errorf(CodeConfiguration, "operation %q has no handler", name)
		}
		if err := validate.Struct(&op.spec); err != nil {
			return DefaultErrorTransformer(err).WithDetail("operation", name)
		}
		for _, p := range op.spec.Params {
			if p.MaxOccurs != Unbounded && p.MinOccurs > p.MaxOccurs {
				return Errorf(CodeConfiguration,
					"operation %q parameter %q: minOccurs %d exceeds maxOccurs %d",
					name, p.Name, p.MinOccurs, p.MaxOccurs)
			}
		}
	}
	for _, rec := range s.records {
		if err := validate.Struct(rec); err != nil {
			return DefaultErrorTransformer(err).WithDetail("record", rec.Name)
		}
	}
	return nil
}

// specs snapshots the registered operation specs in registration order.
func (s *Server) specs() []*OperationSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*OperationSpec, 0, len(s.opOrder))
	for _, name := range s.opOrder {
		spec := s.ops[name].spec
		out = append(out, &spec)
	}
	return out
}

// Contract resolves the schema table and renders the WSDL contract for
// the given base URL. The table is rebuilt on every call and discarded
// with the response.
func (s *Server) Contract(baseURL string) ([]byte, error) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	ops := s.specs()
	table, err := NewSchemaResolver(records).Resolve(ops)
	if err != nil {
		return nil, err
	}
	return GenerateWSDL(s.name, s.namespace, ops, table, baseURL)
}

// Discovery renders the DISCO document for the given base URL.
func (s *Server) Discovery(baseURL string) ([]byte, error) {
	return GenerateDISCO(s.name, s.namespace, baseURL)
}

// Handler returns an http.Handler for use with http.ListenAndServe or
// other HTTP servers. The returned handler includes all configured
// middleware. Call Validate before serving; requests against an invalid
// configuration fail with a configuration error.
func (s *Server) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(s.serveHTTP)
	// Apply middleware in reverse order so first added is outermost
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	return h
}

// queryIntent is the decoded query-string intent signal. The wsdl and
// disco fields are pointers so a bare "?wsdl" (present, empty value)
// is distinguishable from absence.
type queryIntent struct {
	WSDL  *string `schema:"wsdl"`
	Disco *string `schema:"disco"`
	Call  string  `schema:"call"`
}

// reserved query keys that are intent signals, not operation arguments.
var reservedKeys = map[string]bool{"wsdl": true, "disco": true, "call": true}

// ParseRequest extracts the RequestContext from an HTTP request: intent,
// operation name, raw argument map, and the base URL with the query
// string stripped.
func ParseRequest(r *http.Request) (*RequestContext, error) {
	var intent queryIntent
	if err := schemaDecoder.Decode(&intent, r.URL.Query()); err != nil {
		return nil, Errorf(CodeInvalidArgument, "failed to decode query: %v", err)
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	rc := &RequestContext{
		Scheme:  scheme,
		BaseURL: scheme + "://" + r.Host + r.URL.Path,
	}

	switch {
	case intent.WSDL != nil:
		rc.Intent = IntentWSDL
	case intent.Disco != nil:
		rc.Intent = IntentDisco
	case intent.Call != "":
		rc.Intent = IntentInvoke
		rc.Operation = intent.Call
		if err := r.ParseForm(); err != nil {
			return nil, Errorf(CodeInvalidArgument, "failed to parse form: %v", err)
		}
		rc.Args = make(map[string]any, len(r.Form))
		for key, values := range r.Form {
			if reservedKeys[key] {
				continue
			}
			if len(values) == 1 {
				rc.Args[key] = values[0]
			} else {
				rc.Args[key] = values
			}
		}
	default:
		rc.Intent = IntentDocs
	}
	return rc, nil
}

// serveHTTP handles incoming requests (internal, called via Handler()).
func (s *Server) serveHTTP(w http.ResponseWriter, req *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := debug.Stack()
			s.log().Error("PANIC recovered",
				slog.Any("panic", rec),
				slog.String("stack", string(stack)))
			s.write(w, soapFault(Errorf(CodeInternal, "internal server error (panic): %v", rec)))
		}
	}()

	if err := s.Validate(); err != nil {
		s.write(w, textError(s.transform(err)))
		return
	}

	rc, err := ParseRequest(req)
	if err != nil {
		s.write(w, textError(s.transform(err)))
		return
	}

	resp := s.Serve(newContext(req.Context(), w, req, &OperationInfo{Service: s.name, Operation: rc.Operation}), rc)
	if rc.Intent == IntentWSDL || rc.Intent == IntentDisco {
		if s.contractCacheTTL > 0 && resp.Status == http.StatusOK {
			w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(s.contractCacheTTL.Seconds())))
		}
	}
	s.write(w, resp)
}

func (s *Server) write(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		s.log().Error("failed to write response", slog.Any("error", err))
	}
}
