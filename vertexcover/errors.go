package vertexcover

import "errors"

// ErrMalformedMessage is returned when a message does not carry exactly one
// message for each of the two copies.
var ErrMalformedMessage = errors.New("malformed vertex cover message")
