package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotProtoMessage is returned by ProtoJSON for values that are not proto.Message.
	ErrNotProtoMessage = errors.New("value is not a protobuf message")

	// ErrSerialize wraps failures raised by the underlying encoder.
	ErrSerialize = errors.New("failed to serialize content")
)

// Serializer converts a value into a response body.
type Serializer interface {
	// Serialize encodes v.
	Serialize(v any) ([]byte, error)

	// ContentType is the media type of the encoded output.
	ContentType() string
}

// Func adapts an encoding function into a Serializer.
func Func(contentType string, fn func(v any) ([]byte, error)) Serializer {
	return funcSerializer{contentType: contentType, fn: fn}
}

type funcSerializer struct {
	contentType string
	fn          func(v any) ([]byte, error)
}

func (f funcSerializer) Serialize(v any) ([]byte, error) {
	b, err := f.fn(v)
	if err != nil {
		return nil, errors.Join(ErrSerialize, err)
	}
	return b, nil
}

func (f funcSerializer) ContentType() string { return f.contentType }

// JSONOptions controls JSON output. See encoding/json.Encoder. The zero value
// produces the same bytes as json.Marshal.
type JSONOptions struct {
	Prefix string
	Indent string

	// DisableHTMLEscape writes <, > and & verbatim instead of as \u003c,
	// \u003e and \u0026.
	DisableHTMLEscape bool
}

// JSON returns a Serializer backed by encoding/json.
func JSON(opts *JSONOptions) Serializer {
	return Func("application/json; charset=utf-8", func(v any) ([]byte, error) {
		if opts == nil {
			return json.Marshal(v)
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent(opts.Prefix, opts.Indent)
		enc.SetEscapeHTML(!opts.DisableHTMLEscape)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	})
}

// YAMLOptions controls YAML output.
type YAMLOptions struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// YAML returns a Serializer backed by gopkg.in/yaml.v3.
func YAML(opts *YAMLOptions) Serializer {
	return Func("application/yaml", func(v any) ([]byte, error) {
		if opts == nil {
			return yaml.Marshal(v)
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(opts.Indent)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// ProtoJSON returns a Serializer for protobuf messages using the canonical
// JSON mapping.
func ProtoJSON(opts *protojson.MarshalOptions) Serializer {
	return Func("application/json", func(v any) ([]byte, error) {
		m, ok := v.(proto.Message)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNotProtoMessage, v)
		}
		if opts == nil {
			return protojson.Marshal(m)
		}
		return opts.Marshal(m)
	})
}
