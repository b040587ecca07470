package fakehttp

import (
	"context"
	"errors"
	"net/http"
	"reflect"
)

// ErrorType names the error a validator is expected to produce when it detects
// a violation. Errors of that type become an AssertionError wrapping the
// error; any other error is returned unchanged.
//
// The zero value, AnyError, matches every error.
type ErrorType struct {
	typ reflect.Type
}

// AnyError matches every non-nil error.
var AnyError = ErrorType{}

// Allow returns the ErrorType for E. A returned error matches when it, or any
// error in its wrap chain, is assignable to E.
func Allow[E error]() ErrorType {
	return ErrorType{typ: reflect.TypeFor[E]()}
}

func (e ErrorType) String() string {
	if e.typ == nil {
		return "any error"
	}
	return e.typ.String()
}

func (e ErrorType) matches(err error) bool {
	if e.typ == nil {
		return true
	}
	target := reflect.New(e.typ)
	return errors.As(err, target.Interface())
}

// validatorFunc is the single internal shape every registered validator is
// normalized to.
type validatorFunc func(ctx context.Context, req *http.Request) (bool, error)

type assertion struct {
	validate validatorFunc
	allowed  ErrorType
}

// assertionChain evaluates synchronous validators, then asynchronous ones,
// each group in registration order.
type assertionChain struct {
	sync  []assertion
	async []assertion
}

func (c *assertionChain) add(v validatorFunc, allowed ErrorType, async bool) {
	a := assertion{validate: v, allowed: allowed}
	if async {
		c.async = append(c.async, a)
		return
	}
	c.sync = append(c.sync, a)
}

// evaluate returns nil when every validator passes, an *AssertionError on the
// first violation, the context error on cancellation, or an unmatched
// validator error unchanged.
func (c *assertionChain) evaluate(ctx context.Context, req *http.Request) error {
	if c == nil {
		return nil
	}
	for _, a := range c.sync {
		if err := a.check(ctx, req); err != nil {
			return err
		}
	}
	for _, a := range c.async {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.check(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (a assertion) check(ctx context.Context, req *http.Request) error {
	ok, err := a.validate(ctx, req)
	if err != nil {
		if _, isAssertion := asAssertion(err); isAssertion {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		if a.allowed.matches(err) {
			return &AssertionError{Cause: err}
		}
		return err
	}
	if !ok {
		return &AssertionError{}
	}
	return nil
}

// boolValidator adapts a plain predicate.
func boolValidator(fn func(*http.Request) bool) validatorFunc {
	return func(_ context.Context, req *http.Request) (bool, error) {
		return fn(req), nil
	}
}

// boolErrValidator adapts a predicate that may also fail.
func boolErrValidator(fn func(*http.Request) (bool, error)) validatorFunc {
	return func(_ context.Context, req *http.Request) (bool, error) {
		return fn(req)
	}
}

// checkValidator adapts a check that signals failure by returning an error.
func checkValidator(fn func(*http.Request) error) validatorFunc {
	return func(_ context.Context, req *http.Request) (bool, error) {
		if err := fn(req); err != nil {
			return false, err
		}
		return true, nil
	}
}

// asyncCheckValidator adapts a context-aware check that signals failure by
// returning an error.
func asyncCheckValidator(fn func(context.Context, *http.Request) error) validatorFunc {
	return func(ctx context.Context, req *http.Request) (bool, error) {
		if err := fn(ctx, req); err != nil {
			return false, err
		}
		return true, nil
	}
}
