package fakehttp

import (
	"context"
	"net/http"

	"github.com/tarmac-project/fakehttp/serializer"
)

// WithStatusCode sets the status code of the response.
func (t *Transport) WithStatusCode(code int) *Transport {
	t.statusCode = code
	return t
}

// WithVersion sets the protocol version of the response.
func (t *Transport) WithVersion(v Version) *Transport {
	t.version = &v
	return t
}

// WithVersionString sets the protocol version from a "major.minor" string.
// An unparseable string is recorded as a configuration error.
func (t *Transport) WithVersionString(s string) *Transport {
	v, err := ParseVersion(s)
	if err != nil {
		t.fail(err)
		return t
	}
	return t.WithVersion(v)
}

// WithVersionNumbers sets the protocol version from its components.
func (t *Transport) WithVersionNumbers(major, minor int) *Transport {
	return t.WithVersion(Version{Major: major, Minor: minor})
}

// WithExpectedContent sets the response body verbatim.
func (t *Transport) WithExpectedContent(content string) *Transport {
	t.content = &content
	t.contentType = ""
	return t
}

// WithExpectedObject serializes v with the Transport's default serializer and
// uses the result as the response body.
func (t *Transport) WithExpectedObject(v any) *Transport {
	return t.WithSerializedContent(v, t.serializer)
}

// WithSerializedContent serializes v with s and uses the result as the
// response body. A nil serializer or a serialization failure is recorded as a
// configuration error.
func (t *Transport) WithSerializedContent(v any, s serializer.Serializer) *Transport {
	if s == nil {
		t.fail(ErrNilSerializer)
		return t
	}
	b, err := s.Serialize(v)
	if err != nil {
		t.fail(err)
		return t
	}
	content := string(b)
	t.content = &content
	t.contentType = s.ContentType()
	return t
}

// WithResponseHeader adds a single-value response header. Setting the same key
// again replaces the previous value.
func (t *Transport) WithResponseHeader(key, value string) *Transport {
	if t.header == nil {
		t.header = &headerStore{}
	}
	t.header.set(key, value)
	return t
}

// WithResponseHeaderValues adds a multi-value response header.
func (t *Transport) WithResponseHeaderValues(key string, values ...string) *Transport {
	if t.header == nil {
		t.header = &headerStore{}
	}
	t.header.setValues(key, values)
	return t
}

// WithTrailingResponseHeader adds a single-value trailing header.
func (t *Transport) WithTrailingResponseHeader(key, value string) *Transport {
	if t.trailer == nil {
		t.trailer = &headerStore{}
	}
	t.trailer.set(key, value)
	return t
}

// WithTrailingResponseHeaderValues adds a multi-value trailing header.
func (t *Transport) WithTrailingResponseHeaderValues(key string, values ...string) *Transport {
	if t.trailer == nil {
		t.trailer = &headerStore{}
	}
	t.trailer.setValues(key, values)
	return t
}

// WithPreRequest adds an action run at the start of every round trip, before
// any validator. Actions run in the order they were added.
func (t *Transport) WithPreRequest(action func()) *Transport {
	if action == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.WithPreRequestFunc(func() error {
		action()
		return nil
	})
}

// WithPreRequestFunc adds a pre-request action that may fail. A failure other
// than an AssertionError produces a 500 response.
func (t *Transport) WithPreRequestFunc(action func() error) *Transport {
	if action == nil {
		t.fail(ErrNilHook)
		return t
	}
	if t.preActions == nil {
		t.preActions = &actionList{}
	}
	t.preActions.add(action)
	return t
}

// WithPostRequest adds an action run once a response has been built.
func (t *Transport) WithPostRequest(action func()) *Transport {
	if action == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.WithPostRequestFunc(func() error {
		action()
		return nil
	})
}

// WithPostRequestFunc adds a post-request action that may fail. Its error is
// returned from RoundTrip as is.
func (t *Transport) WithPostRequestFunc(action func() error) *Transport {
	if action == nil {
		t.fail(ErrNilHook)
		return t
	}
	if t.postActions == nil {
		t.postActions = &actionList{}
	}
	t.postActions.add(action)
	return t
}

// WithRequestValidator adds a predicate the request must satisfy. A false
// result fails the round trip with an AssertionError.
func (t *Transport) WithRequestValidator(v func(*http.Request) bool) *Transport {
	if v == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.addAssertion(boolValidator(v), AnyError, false)
}

// WithRequestValidatorE adds a predicate that may also return an error. Errors
// matching allowed become an AssertionError wrapping them.
func (t *Transport) WithRequestValidatorE(v func(*http.Request) (bool, error), allowed ErrorType) *Transport {
	if v == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.addAssertion(boolErrValidator(v), allowed, false)
}

// WithRequestCheck adds a check that signals a violation by returning an error
// matching allowed. Returning nil means the request passed.
func (t *Transport) WithRequestCheck(check func(*http.Request) error, allowed ErrorType) *Transport {
	if check == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.addAssertion(checkValidator(check), allowed, false)
}

// WithAsyncRequestValidator adds a context-aware predicate. Asynchronous
// validators run after every synchronous one.
func (t *Transport) WithAsyncRequestValidator(v func(context.Context, *http.Request) (bool, error), allowed ErrorType) *Transport {
	if v == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.addAssertion(validatorFunc(v), allowed, true)
}

// WithAsyncRequestCheck adds a context-aware check that signals a violation by
// returning an error matching allowed.
func (t *Transport) WithAsyncRequestCheck(check func(context.Context, *http.Request) error, allowed ErrorType) *Transport {
	if check == nil {
		t.fail(ErrNilHook)
		return t
	}
	return t.addAssertion(asyncCheckValidator(check), allowed, true)
}

func (t *Transport) addAssertion(v validatorFunc, allowed ErrorType, async bool) *Transport {
	if t.assertions == nil {
		t.assertions = &assertionChain{}
	}
	t.assertions.add(v, allowed, async)
	return t
}
