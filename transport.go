package fakehttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/tarmac-project/fakehttp/serializer"
)

// Config controls construction of a Transport.
type Config struct {
	// Logger receives a debug record per round trip and a warning for every
	// fallback response. Nil discards all output.
	Logger *slog.Logger

	// Serializer encodes values passed to WithExpectedObject. Defaults to
	// serializer.JSON(nil).
	Serializer serializer.Serializer

	// PostActionsOnFault runs post-request actions after a fallback response
	// has been produced. By default a fault skips them.
	PostActionsOnFault bool
}

// Call captures a single request observed by the Transport.
type Call struct {
	// Method is the HTTP method used.
	Method string
	// URL is the requested URL string.
	URL string
	// Header holds a copy of the request headers.
	Header http.Header
	// Body contains the drained request body, if any.
	Body []byte
}

// Transport is an http.RoundTripper that never touches the network. It runs
// the configured pre-request actions and request validators, drains the
// request body and answers with a response assembled from its configuration.
//
// Configure a Transport before handing it to a client. The With methods are
// not safe to call while requests are in flight; RoundTrip itself is safe for
// concurrent use.
type Transport struct {
	statusCode int
	version    *Version
	content    *string
	// contentType is the media type of the configured content.
	contentType string

	header  *headerStore
	trailer *headerStore

	preActions  *actionList
	assertions  *assertionChain
	postActions *actionList

	serializer         serializer.Serializer
	postActionsOnFault bool
	log                *slog.Logger

	// err is the first configuration error.
	err error

	mu    sync.Mutex
	calls []Call
}

// Compile-time check: ensure Transport implements http.RoundTripper.
var _ http.RoundTripper = (*Transport)(nil)

// New creates a Transport answering 200 OK with an empty HTTP/1.0 body.
func New(config Config) *Transport {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := config.Serializer
	if s == nil {
		s = serializer.JSON(nil)
	}

	return &Transport{
		statusCode:         http.StatusOK,
		serializer:         s,
		postActionsOnFault: config.PostActionsOnFault,
		log:                logger,
	}
}

// Client returns an http.Client that dispatches through t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Err returns the first configuration error, if any.
func (t *Transport) Err() error {
	return t.err
}

// Calls returns a copy of the requests observed so far.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

func (t *Transport) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

// phase identifies the step of a round trip, used when reporting faults.
type phase int

const (
	phasePreActions phase = iota
	phaseValidating
	phaseDrainingBody
	phaseBuildingResponse
)

func (p phase) String() string {
	switch p {
	case phasePreActions:
		return "pre-actions"
	case phaseValidating:
		return "validating"
	case phaseDrainingBody:
		return "draining-body"
	case phaseBuildingResponse:
		return "building-response"
	default:
		return "unknown"
	}
}

// fault is an unexpected failure that is answered with a fallback response.
type fault struct {
	phase phase
	err   error
}

func (f *fault) Error() string {
	return fmt.Sprintf("%s: %v", f.phase, f.err)
}

func (f *fault) Unwrap() error {
	return f.err
}

// RoundTrip simulates a single HTTP transaction.
//
// An AssertionError is returned when a validator rejects the request, and no
// response is produced. Any other failure in the pre-actions, while reading
// the request body or while building the response yields a 500 response
// instead. Validator errors that do not match the validator's allowed error
// type are returned unchanged.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer func() { _ = req.Body.Close() }()
	}

	if t.err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, t.err)
	}

	resp, err := t.simulate(req)
	if err != nil {
		var f *fault
		if !errors.As(err, &f) {
			return nil, err
		}

		t.log.Warn("returning fallback response",
			"method", req.Method,
			"url", urlString(req),
			"phase", f.phase.String(),
			"error", f.err,
		)
		resp = fallbackResponse(req)
		if !t.postActionsOnFault {
			return resp, nil
		}
	}

	if err := t.postActions.invokeAll(); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}

	t.log.Debug("simulated round trip",
		"method", req.Method,
		"url", urlString(req),
		"status", resp.StatusCode,
	)
	return resp, nil
}

// simulate runs every step up to and including response assembly. It returns
// a *fault for failures that must be masked by a fallback response.
func (t *Transport) simulate(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if err := guard(ctx, phasePreActions, t.preActions.invokeAll); err != nil {
		return nil, err
	}

	if err := guard(ctx, phaseValidating, func() error {
		return t.assertions.evaluate(ctx, req)
	}); err != nil {
		return nil, err
	}

	var body []byte
	if err := guard(ctx, phaseDrainingBody, func() error {
		var err error
		body, err = drain(ctx, req.Body)
		return err
	}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.record(req, body)

	var resp *http.Response
	if err := guard(ctx, phaseBuildingResponse, func() error {
		resp = t.buildResponse(req)
		return nil
	}); err != nil {
		return nil, err
	}
	return resp, nil
}

// guard runs fn for phase p. Assertion failures, cancellation of ctx and
// unmatched validator errors pass through; every other error and any panic
// become a *fault.
func guard(ctx context.Context, p phase, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			if _, isAssertion := asAssertion(e); isAssertion {
				err = e
				return
			}
			err = &fault{phase: p, err: e}
			return
		}
		err = &fault{phase: p, err: fmt.Errorf("panic: %v", r)}
	}()

	err = fn()
	if err == nil {
		return nil
	}
	if _, isAssertion := asAssertion(err); isAssertion {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	if p == phaseValidating {
		return err
	}
	return &fault{phase: p, err: err}
}

// drain reads body to completion, checking ctx between reads.
func drain(ctx context.Context, body io.Reader) ([]byte, error) {
	if body == nil || body == http.NoBody {
		return nil, nil
	}

	var buf bytes.Buffer
	chunk := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := body.Read(chunk)
		buf.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}
}

func (t *Transport) record(req *http.Request, body []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, Call{
		Method: req.Method,
		URL:    urlString(req),
		Header: req.Header.Clone(),
		Body:   body,
	})
}

func (t *Transport) buildResponse(req *http.Request) *http.Response {
	version := DefaultVersion
	if t.version != nil {
		version = *t.version
	}

	content := ""
	if t.content != nil {
		content = *t.content
	}

	resp := &http.Response{
		StatusCode:    t.statusCode,
		Status:        statusLine(t.statusCode),
		Proto:         version.Proto(),
		ProtoMajor:    version.Major,
		ProtoMinor:    version.Minor,
		Header:        make(http.Header),
		Body:          io.NopCloser(strings.NewReader(content)),
		ContentLength: int64(len(content)),
		Request:       req,
	}

	t.header.apply(resp.Header)
	if !t.header.has("Content-Type") {
		contentType := t.contentType
		if contentType == "" {
			contentType = "text/plain; charset=utf-8"
		}
		resp.Header.Set("Content-Type", contentType)
	}

	if t.trailer != nil {
		resp.Trailer = make(http.Header)
		t.trailer.apply(resp.Trailer)
	}

	return resp
}

func fallbackResponse(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusInternalServerError,
		Status:     statusLine(http.StatusInternalServerError),
		Proto:      fallbackVersion.Proto(),
		ProtoMajor: fallbackVersion.Major,
		ProtoMinor: fallbackVersion.Minor,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Request:    req,
	}
}

func statusLine(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + text
}

func urlString(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	return req.URL.String()
}
