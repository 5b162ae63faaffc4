package soapserver

import (
	"context"
	"fmt"
)

// Serve executes one already-parsed request and returns the response
// triple for the transport layer to send. It is the protocol-agnostic
// entry point; Server.Handler wraps it for net/http.
func (s *Server) Serve(ctx context.Context, rc *RequestContext) Response {
	switch rc.Intent {
	case IntentWSDL:
		body, err := s.Contract(rc.BaseURL)
		if err != nil {
			return textError(s.transform(err))
		}
		return xmlResponse(body)
	case IntentDisco:
		body, err := s.Discovery(rc.BaseURL)
		if err != nil {
			return textError(s.transform(err))
		}
		return xmlResponse(body)
	case IntentInvoke:
		result, err := s.Dispatch(ctx, rc.Operation, rc.Args)
		if err != nil {
			return textError(s.transform(err))
		}
		return textResult(result)
	default:
		return s.docsResponse(rc.BaseURL)
	}
}

// DispatchSOAP dispatches an operation on behalf of a SOAP protocol
// engine and wraps the outcome in a response or fault envelope.
func (s *Server) DispatchSOAP(ctx context.Context, operation string, args map[string]any) Response {
	result, err := s.Dispatch(ctx, operation, args)
	if err != nil {
		return soapFault(s.transform(err))
	}
	return soapResult(s.namespace, operation, result)
}

// Dispatch looks up an operation, validates and casts its arguments, and
// invokes the handler through the interceptor chain. The returned value
// is the handler's raw result, ready for protocol marshaling.
func (s *Server) Dispatch(ctx context.Context, operation string, args map[string]any) (any, error) {
	s.mu.RLock()
	op, ok := s.ops[operation]
	interceptors := s.interceptors
	s.mu.RUnlock()
	if !ok {
		return nil, &UnknownOperationError{Name: operation}
	}

	var missing []string
	for _, p := range op.spec.Params {
		if !p.Required() {
			continue
		}
		if _, present := args[p.Name]; !present {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingParametersError{Operation: operation, Names: missing}
	}

	cast := make(map[string]any, len(args))
	for _, p := range op.spec.Params {
		raw, present := args[p.Name]
		if !present {
			continue
		}
		value, err := Cast(raw, p)
		if err != nil {
			return nil, err
		}
		cast[p.Name] = value
	}

	info := &OperationInfo{Service: s.name, Operation: operation}
	all := make([]UnaryInterceptor, 0, len(interceptors)+len(op.interceptors))
	all = append(all, interceptors...)
	all = append(all, op.interceptors...)

	invoke := chainInterceptors(all, info)(func(ctx context.Context, args map[string]any) (res any, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = &HandlerError{Operation: operation, Err: fmt.Errorf("panic: %v", rec)}
			}
		}()
		res, err = op.fn(ctx, args)
		if err != nil {
			err = &HandlerError{Operation: operation, Err: err}
		}
		return res, err
	})

	return invoke(ctx, cast)
}

// transform maps an error through the configured transformer, falling
// back to the default, and applies internal-error masking.
func (s *Server) transform(err error) *Error {
	var svcErr *Error
	if s.errorTransformer != nil {
		svcErr = s.errorTransformer(err)
	}
	if svcErr == nil {
		svcErr = DefaultErrorTransformer(err)
	}
	if s.maskInternalErrors && svcErr.Code == CodeInternal {
		svcErr = NewError(CodeInternal, "internal server error")
	}
	return svcErr
}
