// SPDX-License-Identifier: ice License 1.0

package time

import (
	"database/sql"
	"database/sql/driver"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Public API.

const (
	// Layout is the only textual form SPDX documents use for timestamps: ISO-8601, UTC, second precision.
	Layout = "2006-01-02T15:04:05Z"
)

var (
	ErrInvalidFormat = errors.New("invalid timestamp format")
	ErrNotUTC        = errors.New("timestamp is not in UTC")
)

type (
	// Time is an SPDX timestamp. It's always UTC and truncated to seconds, so == and Equal agree.
	Time struct {
		stdlibtime.Time
	}
)

// Private API.

const (
	null = "null"
)

var (
	_ msgpack.CustomEncoder                        = (*Time)(nil)
	_ msgpack.CustomDecoder                        = (*Time)(nil)
	_ json.UnmarshalerContext                      = (*Time)(nil)
	_ json.MarshalerContext                        = (*Time)(nil)
	_ yaml.Marshaler                               = Time{}
	_ yaml.Unmarshaler                             = (*Time)(nil)
	_ sql.Scanner                                  = (*Time)(nil)
	_ driver.Valuer                                = Time{}
	_ interface{ MarshalBinary() ([]byte, error) } = (*Time)(nil)
	_ interface{ MarshalText() ([]byte, error) }   = (*Time)(nil)
	_ interface{ UnmarshalBinary([]byte) error }   = (*Time)(nil)
	_ interface{ UnmarshalText([]byte) error }     = (*Time)(nil)
)
