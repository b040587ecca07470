package fixture

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tarmac-project/fakehttp"
)

// ErrInvalidFixture is returned when a fixture cannot be decoded or describes
// an impossible response.
var ErrInvalidFixture = errors.New("invalid fixture")

// Header is a named header with one or more values.
type Header struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Fixture describes a canned response.
type Fixture struct {
	// Status is the response status code. Zero keeps the Transport's default.
	Status int `yaml:"status"`

	// Version is the protocol version, for example "1.1" or "2.0".
	Version string `yaml:"version"`

	// Body is used verbatim as the response body.
	Body *string `yaml:"body"`

	// Object is serialized with the Transport's serializer. It cannot be
	// combined with Body.
	Object any `yaml:"object"`

	Headers  []Header `yaml:"headers"`
	Trailers []Header `yaml:"trailers"`

	version *fakehttp.Version
}

// Load decodes and validates a fixture from r. Unknown fields are rejected.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Join(ErrInvalidFixture, err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *Fixture) validate() error {
	if f.Body != nil && f.Object != nil {
		return fmt.Errorf("%w: body and object are mutually exclusive", ErrInvalidFixture)
	}

	if f.Version != "" {
		v, err := fakehttp.ParseVersion(f.Version)
		if err != nil {
			return errors.Join(ErrInvalidFixture, err)
		}
		f.version = &v
	}

	for _, h := range append(append([]Header(nil), f.Headers...), f.Trailers...) {
		if h.Name == "" {
			return fmt.Errorf("%w: header without a name", ErrInvalidFixture)
		}
	}
	return nil
}

// Apply configures t with the fixture and returns it.
func (f *Fixture) Apply(t *fakehttp.Transport) *fakehttp.Transport {
	if f.Status != 0 {
		t.WithStatusCode(f.Status)
	}
	if f.version != nil {
		t.WithVersion(*f.version)
	}

	switch {
	case f.Body != nil:
		t.WithExpectedContent(*f.Body)
	case f.Object != nil:
		t.WithExpectedObject(f.Object)
	}

	for _, h := range f.Headers {
		if len(h.Values) == 1 {
			t.WithResponseHeader(h.Name, h.Values[0])
			continue
		}
		t.WithResponseHeaderValues(h.Name, h.Values...)
	}
	for _, h := range f.Trailers {
		if len(h.Values) == 1 {
			t.WithTrailingResponseHeader(h.Name, h.Values[0])
			continue
		}
		t.WithTrailingResponseHeaderValues(h.Name, h.Values...)
	}
	return t
}
