package session

import "github.com/pkg/errors"

// ErrSessionNotFound indicates no session is registered for the tracker address.
var ErrSessionNotFound = errors.New("no session for tracker address")

// ErrSessionAlreadyExists indicates the tracker address is already registered.
var ErrSessionAlreadyExists = errors.New("tracker address already registered")
