package server

import "errors"

var (
	ErrUnknownBody = errors.New("server: unknown body")
	ErrNoTexture   = errors.New("server: body has no texture")
	ErrBadParam    = errors.New("server: bad parameter")
	ErrBadCommand  = errors.New("server: bad command")
	ErrRateLimited = errors.New("server: rate limit exceeded")
)
