package pokeapi

import "errors"

var (
	// ErrNotFound is returned when the upstream reports a missing resource
	// for a direct lookup.
	ErrNotFound = errors.New("pokeapi: resource not found")

	// ErrUpstream is returned for network errors, timeouts and non-404
	// upstream failure statuses.
	ErrUpstream = errors.New("pokeapi: upstream unavailable")
)
