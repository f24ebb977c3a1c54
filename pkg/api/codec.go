// Package api defines the request and response messages of the splitr.v1
// Connect services. Messages are plain structs carried as JSON.
package api

import "encoding/json"

// Codec marshals messages as JSON. It is registered under the name "json",
// so clients send application/json (unary) or application/connect+json
// (streaming) bodies.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}
