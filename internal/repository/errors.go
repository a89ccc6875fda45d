package repository

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalid        = errors.New("invalid input")
	ErrNotCompleted   = errors.New("challenge not completed")
	ErrAlreadyClaimed = errors.New("reward already claimed")
)
