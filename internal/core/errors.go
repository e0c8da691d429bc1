package core

import "errors"

// ErrUnauthorized signals that the upstream access gate denied the request.
// Handlers map it to 401; every other gate failure is a server error.
var ErrUnauthorized = errors.New("not authorized for this content")
