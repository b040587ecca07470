package fakehttp

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderStore(t *testing.T) {
	tt := []struct {
		name  string
		setup func(s *headerStore)
		want  http.Header
	}{
		{
			name:  "Empty",
			setup: func(*headerStore) {},
			want:  http.Header{},
		},
		{
			name: "Single value",
			setup: func(s *headerStore) {
				s.set("ETag", `"abc123"`)
			},
			want: http.Header{"Etag": {`"abc123"`}},
		},
		{
			name: "Last write wins",
			setup: func(s *headerStore) {
				s.set("X-Custom", "first")
				s.set("X-Custom", "second")
			},
			want: http.Header{"X-Custom": {"second"}},
		},
		{
			name: "Last write wins across key case",
			setup: func(s *headerStore) {
				s.set("etag", "a")
				s.set("ETag", "b")
			},
			want: http.Header{"Etag": {"b"}},
		},
		{
			name: "Multi value replaced across key case",
			setup: func(s *headerStore) {
				s.setValues("x-custom", []string{"a", "b"})
				s.setValues("X-CUSTOM", []string{"c"})
			},
			want: http.Header{"X-Custom": {"c"}},
		},
		{
			name: "Multi value keeps order and count",
			setup: func(s *headerStore) {
				s.setValues("X-Custom", []string{"value", "value2", "value"})
			},
			want: http.Header{"X-Custom": {"value", "value2", "value"}},
		},
		{
			name: "Multi value replaced",
			setup: func(s *headerStore) {
				s.setValues("X-Custom", []string{"a", "b"})
				s.setValues("X-Custom", []string{"c"})
			},
			want: http.Header{"X-Custom": {"c"}},
		},
		{
			name: "Distinct keys coexist",
			setup: func(s *headerStore) {
				s.set("A", "1")
				s.set("B", "2")
				s.setValues("C", []string{"3", "4"})
			},
			want: http.Header{"A": {"1"}, "B": {"2"}, "C": {"3", "4"}},
		},
		{
			name: "Single before multi for the same key",
			setup: func(s *headerStore) {
				s.setValues("X-Custom", []string{"multi"})
				s.set("X-Custom", "single")
			},
			want: http.Header{"X-Custom": {"single", "multi"}},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s := &headerStore{}
			tc.setup(s)

			got := make(http.Header)
			s.apply(got)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeaderStoreNil(t *testing.T) {
	var s *headerStore

	h := make(http.Header)
	s.apply(h)
	if len(h) != 0 {
		t.Errorf("expected no headers from nil store, got %v", h)
	}

	if s.has("Content-Type") {
		t.Error("nil store should not report any key")
	}
}

func TestHeaderStoreHas(t *testing.T) {
	s := &headerStore{}
	s.set("content-type", "application/xml")
	s.setValues("X-Multi", []string{"a"})

	for _, key := range []string{"Content-Type", "CONTENT-TYPE", "x-multi"} {
		if !s.has(key) {
			t.Errorf("expected store to contain %q", key)
		}
	}
	if s.has("Accept") {
		t.Error("unexpected key Accept")
	}
}

func TestHeaderStoreCopiesValues(t *testing.T) {
	values := []string{"a", "b"}
	s := &headerStore{}
	s.setValues("X-Custom", values)
	values[0] = "mutated"

	h := make(http.Header)
	s.apply(h)
	if got := h.Values("X-Custom"); got[0] != "a" {
		t.Errorf("store should not alias caller slice, got %v", got)
	}
}
