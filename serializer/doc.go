/*
Package serializer turns structured values into response bodies for the fake
transport.

Each constructor takes an optional options value. A nil options value selects
the underlying library's default behavior, so JSON(nil) produces exactly what
encoding/json.Marshal produces.

	fake := fakehttp.New(fakehttp.Config{}).
		WithSerializedContent(model, serializer.JSON(&serializer.JSONOptions{Indent: "  "}))
*/
package serializer
