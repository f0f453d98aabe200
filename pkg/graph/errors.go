package graph

import "errors"

var (
	ErrUnknownVertex   = errors.New("unknown vertex")
	ErrDuplicateVertex = errors.New("duplicate vertex")
	ErrEmptyGraph      = errors.New("graph has no vertices")
	ErrNoPathFound     = errors.New("no path found")
	ErrFinalized       = errors.New("graph already finalized")

	ErrInvalidCoordinate = errors.New("coordinate is not a finite number")
)
