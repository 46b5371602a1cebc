package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidRecipe   = errors.New("invalid recipe")
	ErrInvalidDuration = errors.New("invalid step duration")
)
