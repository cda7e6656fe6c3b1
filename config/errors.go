// Package config loads and optionally hot-reloads the placement-override
// document described in spec.md §4.6.
package config

import "errors"

// Configuration loading errors. Per spec.md §5, ErrConfig and friends are
// always recovered locally with a warning; the system never fails to
// start because of configuration.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrParse        = errors.New("configuration parse error")
)
