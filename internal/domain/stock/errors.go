package stock

import "errors"

// Lookup and provider errors
var (
	ErrNetwork    = errors.New("stock: inventory provider unreachable")
	ErrService    = errors.New("stock: inventory provider returned an invalid response")
	ErrTimeout    = errors.New("stock: inventory provider timed out")
	ErrSuperseded = errors.New("stock: lookup superseded by a newer request")
)
