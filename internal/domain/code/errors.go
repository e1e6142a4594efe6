package code

import "errors"

// Code catalog domain errors
var (
	ErrCodeNotFound = errors.New("attendance code not found")
	ErrCodeInUse    = errors.New("attendance code is still referenced by attendance cells")
)
