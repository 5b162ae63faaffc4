package soapserver

import (
	"context"
)

// InvokeFunc represents the next handler in an interceptor chain. It is
// passed to [UnaryInterceptor] functions to invoke the next interceptor or
// the operation handler itself.
type InvokeFunc func(ctx context.Context, args map[string]any) (res any, err error)

// UnaryInterceptor is a hook that wraps operation dispatch.
//
//	func logging(ctx context.Context, args map[string]any, info *soapserver.OperationInfo, next soapserver.InvokeFunc) (any, error) {
//	    start := time.Now()
//	    res, err := next(ctx, args)
//	    log.Printf("%s.%s took %v", info.Service, info.Operation, time.Since(start))
//	    return res, err
//	}
//
// Interceptors can inspect or modify the cast argument map before calling
// next, inspect the result afterwards, short-circuit by returning an error
// without calling next, and add values to the context.
type UnaryInterceptor func(ctx context.Context, args map[string]any, info *OperationInfo, next InvokeFunc) (res any, err error)

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []UnaryInterceptor, info *OperationInfo) func(InvokeFunc) InvokeFunc {
	return func(final InvokeFunc) InvokeFunc {
		chain := final
		for i := len(interceptors) - 1; i >= 0; i-- {
			current := interceptors[i]
			next := chain
			chain = func(ctx context.Context, args map[string]any) (any, error) {
				return current(ctx, args, info, next)
			}
		}
		return chain
	}
}
