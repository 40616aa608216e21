package service

import "errors"

var (
	ErrInvalid        = errors.New("invalid")
	ErrMissingContent = errors.New("missing content")
	ErrUpstream       = errors.New("upstream request failed")
)
