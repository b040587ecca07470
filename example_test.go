package fakehttp_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tarmac-project/fakehttp"
	"github.com/tarmac-project/fakehttp/serializer"
)

func ExampleTransport() {
	fake := fakehttp.New(fakehttp.Config{}).
		WithStatusCode(http.StatusCreated).
		WithResponseHeader("ETag", `"abc123"`).
		WithExpectedContent("created")

	resp, err := fake.Client().Post("https://example.com/api", "text/plain", strings.NewReader("payload"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Println(resp.Status, resp.Proto)
	fmt.Println(resp.Header.Get("ETag"))
	fmt.Println(string(body))
	// Output:
	// 201 Created HTTP/1.0
	// "abc123"
	// created
}

func ExampleTransport_WithRequestValidator() {
	fake := fakehttp.New(fakehttp.Config{}).
		WithRequestValidator(func(r *http.Request) bool {
			return r.Method == http.MethodGet
		})

	_, err := fake.Client().Post("https://example.com/api", "text/plain", nil)
	fmt.Println(errors.Is(err, fakehttp.ErrRequestAssertion))
	// Output: true
}

func ExampleTransport_WithSerializedContent() {
	fake := fakehttp.New(fakehttp.Config{}).
		WithSerializedContent(map[string]string{"name": "Stan"}, serializer.YAML(nil))

	resp, err := fake.Client().Get("https://example.com/api")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Println(resp.Header.Get("Content-Type"))
	fmt.Print(string(body))
	// Output:
	// application/yaml
	// name: Stan
}

func ExampleTransport_Calls() {
	fake := fakehttp.New(fakehttp.Config{})

	resp, err := fake.Client().Post("https://example.com/api", "text/plain", strings.NewReader("hello"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	resp.Body.Close()

	for _, c := range fake.Calls() {
		fmt.Println(c.Method, c.URL, string(c.Body))
	}
	// Output: POST https://example.com/api hello
}
