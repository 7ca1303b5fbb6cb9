package domain

import "errors"

// Request validation errors
var (
	ErrInvalidRequest = errors.New("parameter \"name\" is required")
	ErrInvalidFilter  = errors.New("invalid numeric filter value")
)

// External source errors
var (
	ErrHeroNotFound      = errors.New("hero not found")
	ErrSourceUnavailable = errors.New("hero source unavailable")
)
