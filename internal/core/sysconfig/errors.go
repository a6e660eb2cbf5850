package sysconfig

import "errors"

var (
	ErrNotFound     = errors.New("config entry not found")
	ErrInvalidValue = errors.New("invalid config value")
)
