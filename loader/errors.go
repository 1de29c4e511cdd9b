// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package loader

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes loader errors.
type ErrorKind uint8

const (
	// ErrResourceUnavailable indicates the file could not be opened or read
	// in full. Missing files, permission problems, directories and short
	// reads all map here.
	ErrResourceUnavailable ErrorKind = iota
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrResourceUnavailable:
		return "ResourceUnavailable"
	default:
		return "Unknown"
	}
}

// Error is returned by Load.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Path is the file that was being loaded.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func unavailable(path string, err error) *Error {
	return &Error{Kind: ErrResourceUnavailable, Path: path, Err: err}
}

// IsResourceUnavailable reports whether err is, or wraps, a loader error of
// kind ErrResourceUnavailable.
func IsResourceUnavailable(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == ErrResourceUnavailable
}
