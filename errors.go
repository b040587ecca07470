package fakehttp

import "errors"

var (
	// ErrRequestAssertion is matched by every AssertionError. Use errors.Is to
	// detect a failed request expectation through http.Client wrapping.
	ErrRequestAssertion = errors.New("request message validation returned failure")

	// ErrInvalidConfiguration is joined with the first configuration error and
	// returned from every RoundTrip on a misconfigured Transport.
	ErrInvalidConfiguration = errors.New("invalid fake transport configuration")

	// ErrNilHook is recorded when a nil action or validator is registered.
	ErrNilHook = errors.New("action or validator cannot be nil")

	// ErrNilSerializer is recorded when WithSerializedContent is given a nil
	// serializer.
	ErrNilSerializer = errors.New("serializer cannot be nil")

	// ErrInvalidVersion indicates a protocol version string that is not "major.minor".
	ErrInvalidVersion = errors.New("invalid protocol version")
)

// AssertionError reports that a request did not meet a configured expectation.
// Cause is set when a validator returned an error of its allowed type.
type AssertionError struct {
	Cause error
}

func (e *AssertionError) Error() string {
	if e.Cause == nil {
		return ErrRequestAssertion.Error()
	}
	return ErrRequestAssertion.Error() + ": " + e.Cause.Error()
}

func (e *AssertionError) Unwrap() error {
	return e.Cause
}

func (e *AssertionError) Is(target error) bool {
	return target == ErrRequestAssertion
}

// asAssertion reports whether err is, or wraps, an AssertionError.
func asAssertion(err error) (*AssertionError, bool) {
	var assertErr *AssertionError
	if errors.As(err, &assertErr) {
		return assertErr, true
	}
	return nil, false
}
