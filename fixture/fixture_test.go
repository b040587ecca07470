package fixture

import (
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarmac-project/fakehttp"
)

func TestLoad(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Empty document", "", true},
		{"Status only", "status: 204\n", false},
		{"Unknown field", "statuscode: 200\n", true},
		{"Bad version", "version: banana\n", true},
		{"Body and object", "body: raw\nobject: {a: 1}\n", true},
		{"Header without name", "headers:\n  - values: [a]\n", true},
		{"Trailer without name", "trailers:\n  - values: [a]\n", true},
		{"Empty body", "body: \"\"\n", false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Load(strings.NewReader(tc.input))
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidFixture)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadFile("testdata/missing.yaml")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Conflicting content", func(t *testing.T) {
		_, err := LoadFile("testdata/conflicting.yaml")
		require.ErrorIs(t, err, ErrInvalidFixture)
		assert.Contains(t, err.Error(), "conflicting.yaml")
	})
}

func TestApply(t *testing.T) {
	t.Run("Object with headers and trailers", func(t *testing.T) {
		f, err := LoadFile("testdata/created.yaml")
		require.NoError(t, err)

		fake := f.Apply(fakehttp.New(fakehttp.Config{}))
		require.NoError(t, fake.Err())

		resp, err := fake.Client().Get("https://example.com/api")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "HTTP/1.1", resp.Proto)
		assert.JSONEq(t, `{"firstName":"Stan","lastName":"Lee"}`, string(body))
		assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, `"abc123"`, resp.Header.Get("ETag"))
		assert.Equal(t, []string{"value", "value2"}, resp.Header.Values("X-Multi"))
		assert.Equal(t, "deadbeef", resp.Trailer.Get("X-Checksum"))
	})

	t.Run("Raw body", func(t *testing.T) {
		f, err := LoadFile("testdata/bad_request.yaml")
		require.NoError(t, err)

		fake := f.Apply(fakehttp.New(fakehttp.Config{}))

		resp, err := fake.Client().Get("https://example.com/api")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "HTTP/1.0", resp.Proto)
		assert.Equal(t, "Unable to find sample", string(body))
	})

	t.Run("Empty fixture keeps defaults", func(t *testing.T) {
		f, err := Load(strings.NewReader("headers: []\n"))
		require.NoError(t, err)

		fake := f.Apply(fakehttp.New(fakehttp.Config{}).WithExpectedContent("kept"))

		resp, err := fake.Client().Get("https://example.com/api")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "kept", string(body))
	})
}
