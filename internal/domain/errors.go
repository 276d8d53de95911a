// Package domain holds the error taxonomy shared by every server layer.
package domain

import "errors"

var (
	// ErrConfig signals invalid or missing startup configuration.
	ErrConfig = errors.New("invalid configuration")
	// ErrConnection signals an unreachable record store.
	ErrConnection = errors.New("store unreachable")
	// ErrNotFound signals that an identifier resolves to no record.
	ErrNotFound = errors.New("not found")
	// ErrStore signals a record store query failure.
	ErrStore = errors.New("store query failed")
)
