package http

import (
	"net/http"

	"vesselq/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates a T from the body before calling fn.
// Bind failures reply 400 without reaching fn; fn's error maps through perr
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return reply(fn(r, in))
	})
}

// JSONHandlerNoBody is JSONHandler for GET routes
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

func reply(v any, err error) Response {
	if err != nil {
		return Error(err)
	}
	return OK(v)
}
