package events

import "errors"

// ErrBrokerClosed is returned by SendEvent and Listen after Close
var ErrBrokerClosed = errors.New("event broker closed")
