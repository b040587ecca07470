package hostmock

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/http"
)

const (
	defaultNamespace  = "tarmac"
	defaultCapability = "httpclient"
	defaultFunction   = "call"
)

var (
	// ErrUnexpectedNamespace is returned when the namespace is not as expected.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned when the capability is not as expected.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned when the function is not as expected.
	ErrUnexpectedFunction = errors.New("unexpected function")

	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")

	// ErrNilTransport is returned by New when no Transport is configured.
	ErrNilTransport = errors.New("transport cannot be nil")

	// ErrInvalidPayload is returned when the payload is not an HTTPClient request.
	ErrInvalidPayload = errors.New("invalid httpclient payload")

	// ErrRoundTrip wraps errors returned by the Transport.
	ErrRoundTrip = errors.New("round trip failed")
)

// Config represents the configuration for creating a Mock.
type Config struct {
	// ExpectedNamespace is the namespace expected in the host call. Defaults to "tarmac".
	ExpectedNamespace string

	// ExpectedCapability is the capability expected in the host call. Defaults to "httpclient".
	ExpectedCapability string

	// ExpectedFunction is the function expected in the host call. Defaults to "call".
	ExpectedFunction string

	// Transport answers the decoded requests, typically a *fakehttp.Transport.
	Transport http.RoundTripper

	// Context is attached to every dispatched request. Defaults to
	// context.Background().
	Context context.Context

	// Error is the error to return if the host is configured to fail.
	Error error

	// Fail indicates whether every host call should return an error.
	Fail bool
}

// Mock simulates the httpclient capability of a waPC host.
type Mock struct {
	namespace  string
	capability string
	function   string
	transport  http.RoundTripper
	ctx        context.Context
	err        error
	fail       bool
}

// New creates a Mock based on the provided Config.
func New(config Config) (*Mock, error) {
	if config.Transport == nil {
		return nil, ErrNilTransport
	}

	m := &Mock{
		namespace:  config.ExpectedNamespace,
		capability: config.ExpectedCapability,
		function:   config.ExpectedFunction,
		transport:  config.Transport,
		ctx:        config.Context,
		err:        config.Error,
		fail:       config.Fail,
	}
	if m.namespace == "" {
		m.namespace = defaultNamespace
	}
	if m.capability == "" {
		m.capability = defaultCapability
	}
	if m.function == "" {
		m.function = defaultFunction
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	return m, nil
}

// HostCall decodes an HTTPClient payload, dispatches it through the configured
// Transport and returns the encoded HTTPClientResponse.
func (m *Mock) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	// Return user-defined error if Fail is set
	if m.fail && m.err != nil {
		return nil, m.err
	}

	if m.fail {
		return nil, ErrOperationFailed
	}

	if m.namespace != namespace {
		return nil, fmt.Errorf("%w: expected namespace %s, got %s", ErrUnexpectedNamespace, m.namespace, namespace)
	}
	if m.capability != capability {
		return nil, fmt.Errorf("%w: expected capability %s, got %s", ErrUnexpectedCapability, m.capability, capability)
	}
	if m.function != function {
		return nil, fmt.Errorf("%w: expected function %s, got %s", ErrUnexpectedFunction, m.function, function)
	}

	var call proto.HTTPClient
	if err := call.UnmarshalVT(payload); err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	req, err := newRequest(m.ctx, &call)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}

	resp, err := m.transport.RoundTrip(req)
	if err != nil {
		return nil, errors.Join(ErrRoundTrip, err)
	}
	defer resp.Body.Close()

	return encodeResponse(resp)
}

func newRequest(ctx context.Context, call *proto.HTTPClient) (*http.Request, error) {
	var body io.Reader
	if b := call.GetBody(); len(b) > 0 {
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, call.GetMethod(), call.GetUrl(), body)
	if err != nil {
		return nil, err
	}

	for name, header := range call.GetHeaders() {
		for _, v := range header.GetValues() {
			req.Header.Add(name, v)
		}
	}
	return req, nil
}

func encodeResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrRoundTrip, err)
	}

	out := &proto.HTTPClientResponse{
		Status:  &sdkproto.Status{Status: "OK", Code: 200},
		Code:    int32(resp.StatusCode),
		Headers: make(map[string]*proto.Header, len(resp.Header)),
		Body:    body,
	}
	for name, values := range resp.Header {
		out.Headers[name] = &proto.Header{Values: values}
	}

	return out.MarshalVT()
}
