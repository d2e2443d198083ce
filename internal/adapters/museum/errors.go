package museum

import "errors"

// Sentinel kinds for museum API errors.
var (
	ErrInvalidID = errors.New("invalid object id")
	ErrNotFound  = errors.New("object not found")
	ErrUpstream  = errors.New("museum api failed")
	ErrDecode    = errors.New("decode museum response")
)
