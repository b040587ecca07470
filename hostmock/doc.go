/*
Package hostmock provides a pretend waPC host that serves httpclient calls from
an http.RoundTripper.

WebAssembly guests built on the Tarmac SDK never see an http.Client: they
marshal an HTTPClient protobuf and hand it to the host. hostmock decodes that
payload, replays it through a Transport (usually a *fakehttp.Transport) and
encodes the answer as an HTTPClientResponse, so guest code can be tested with
the same fake used for regular clients.

Quick start

	fake := fakehttp.New(fakehttp.Config{}).
		WithStatusCode(http.StatusCreated).
		WithExpectedContent(`{"id":1}`)

	m, _ := hostmock.New(hostmock.Config{Transport: fake})

	// Inject into a component under test
	resp, err := m.HostCall("tarmac", "httpclient", "call", payload)

Behavior

  - If Fail is true and Error is set, HostCall returns that error.
  - If Fail is true and Error is nil, HostCall returns ErrOperationFailed.
  - Otherwise, HostCall enforces the expected routing (defaulting to
    tarmac/httpclient/call), dispatches the decoded request and reports the
    HTTP result with a host status of 200.
  - Errors from the Transport, including request assertion failures, are
    returned joined with ErrRoundTrip.
*/
package hostmock
