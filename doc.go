/*
Package fakehttp provides an http.RoundTripper that answers requests with
configurable synthetic responses, so code built on http.Client can be unit
tested without a live endpoint.

# Basic Usage

Configure a Transport with the fluent With methods and hand its client to the
code under test:

	fake := fakehttp.New(fakehttp.Config{}).
		WithStatusCode(http.StatusCreated).
		WithResponseHeader("ETag", `"abc123"`).
		WithExpectedObject(model)

	resp, err := fake.Client().Post("https://example.com/api", "application/json", body)

# Request Validation

Validators inspect each request before a response is produced. A validator
that rejects the request makes the round trip fail with an *AssertionError:

	fake.WithRequestValidator(func(r *http.Request) bool {
		return r.Method == http.MethodPost
	})

	_, err := fake.Client().Get("https://example.com/api")
	// errors.Is(err, fakehttp.ErrRequestAssertion) == true

Validators that report failures as errors declare the error type they use with
Allow. Errors of that type become an AssertionError wrapping the error;
other errors are returned unchanged.

	fake.WithRequestCheck(checkSignature, fakehttp.Allow[*SignatureError]())

# Round Trip Order

Every round trip runs pre-request actions, synchronous validators,
asynchronous validators, drains the request body, builds the response and
finally runs post-request actions. A failure other than an AssertionError
before the response is built produces a 500 Internal Server Error response.

# Inspecting Calls

	for _, c := range fake.Calls() {
		// c.Method, c.URL, c.Header, c.Body
	}
*/
package fakehttp
