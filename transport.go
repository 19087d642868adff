package fwire

import "context"

// Transport delivers an encoded wire document to the database and
// returns the raw response body. Implementations POST the document with
// Content-Type application/json; connection handling, auth and response
// decoding live entirely on their side of this interface.
type Transport interface {
	Post(ctx context.Context, doc []byte) ([]byte, error)
}
