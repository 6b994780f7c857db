package common

import "errors"

var (

	// API client specific errors
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")

	// repository specific errors
	ErrNotFound = errors.New("not found")

	// reconciliation specific errors
	ErrPersistence = errors.New("persistence error")
)
