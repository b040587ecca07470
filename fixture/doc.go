// Package fixture loads canned responses for a fakehttp.Transport from YAML.
//
//	status: 201
//	version: "1.1"
//	object:
//	  firstName: Stan
//	headers:
//	  - name: ETag
//	    values: ['"abc123"']
//
// Load the file and apply it to a Transport:
//
//	f, err := fixture.LoadFile("testdata/created.yaml")
//	fake := f.Apply(fakehttp.New(fakehttp.Config{}))
package fixture
