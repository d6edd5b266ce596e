// SPDX-License-Identifier: ice License 1.0

// Package record holds the machinery every SPDX record type is built on: a declarative table of fields,
// each naming its structured-input key, its tag-value tag and whether it is mandatory, plus decode, encode
// and structural equality driven entirely by that table.
package record

import (
	"encoding"

	"github.com/pkg/errors"
)

// Public API.

var (
	ErrMissingField       = errors.New("missing mandatory field")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidEnumValue   = errors.New("invalid enum value")
	ErrInvalidFieldType   = errors.New("invalid field type")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrDuplicateField     = errors.New("duplicate field")
)

type (
	// Raw is the format independent structured input/output of a single record: the decoded JSON object,
	// YAML mapping, msgpack map or the tag-value pairs of one record block.
	Raw map[string]any

	// Optional is an explicitly present or absent value; absent is not the same as the zero value.
	Optional[T comparable] struct {
		value T
		set   bool
	}

	// EnumValue is a closed enumeration: only the values it reports valid have a textual encoding.
	EnumValue interface {
		comparable
		encoding.TextMarshaler
		IsValid() bool
	}

	Field[R any] struct {
		decode   func(*R, any) error
		encode   func(*R) (string, error)
		present  func(*R) bool
		equal    func(a, b *R) bool
		Key      string
		Tag      string
		Optional bool
		Text     bool
	}

	Schema[R any] struct {
		Name   string
		Fields []*Field[R]
	}
)
