package tracker

import "github.com/pkg/errors"

// ErrNotInitialized indicates an operation that needs a live socket was
// called before Init.
var ErrNotInitialized = errors.New("tracker not initialized")

// ErrSessionClosed indicates the session was torn down while Init was
// still discovering the server.
var ErrSessionClosed = errors.New("session closed during discovery")
