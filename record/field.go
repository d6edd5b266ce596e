// SPDX-License-Identifier: ice License 1.0

package record

import (
	"encoding"
	stdlibtime "time"

	"github.com/pkg/errors"

	"github.com/ice-blockchain/spdx/terror"
	"github.com/ice-blockchain/spdx/time"
)

func String[R any](key, tag string, get func(*R) *string) *Field[R] {
	return &Field[R]{
		Key: key,
		Tag: tag,
		decode: func(rec *R, val any) error {
			str, err := asString(key, val)
			if err != nil {
				return err
			}
			*get(rec) = str

			return nil
		},
		encode: func(rec *R) (string, error) {
			return *get(rec), nil
		},
		present: func(*R) bool { return true },
		equal: func(a, b *R) bool {
			return *get(a) == *get(b)
		},
	}
}

func OptionalString[R any](key, tag string, get func(*R) *Optional[string]) *Field[R] {
	return &Field[R]{
		Key:      key,
		Tag:      tag,
		Optional: true,
		decode: func(rec *R, val any) error {
			str, err := asString(key, val)
			if err != nil {
				return err
			}
			*get(rec) = Some(str)

			return nil
		},
		encode: func(rec *R) (string, error) {
			return get(rec).OrElse(""), nil
		},
		present: func(rec *R) bool {
			return get(rec).IsSet()
		},
		equal: func(a, b *R) bool {
			return *get(a) == *get(b)
		},
	}
}

func Timestamp[R any](key, tag string, get func(*R) *time.Time) *Field[R] {
	return &Field[R]{
		Key: key,
		Tag: tag,
		decode: func(rec *R, val any) error {
			switch typed := val.(type) {
			case string:
				parsed, err := time.Parse(typed)
				if err != nil {
					return terror.Field(errors.Wrapf(ErrInvalidTimestamp, "%v", err), key, typed)
				}
				if parsed.IsZero() {
					return terror.Field(errors.Wrap(ErrInvalidTimestamp, "zero timestamp"), key, typed)
				}
				*get(rec) = parsed

				return nil
			case stdlibtime.Time:
				if _, offset := typed.Zone(); offset != 0 {
					return terror.Field(errors.Wrapf(ErrInvalidTimestamp, "%v", time.ErrNotUTC), key, typed)
				}
				if typed.IsZero() {
					return terror.Field(errors.Wrap(ErrInvalidTimestamp, "zero timestamp"), key, typed)
				}
				*get(rec) = time.New(typed)

				return nil
			default:
				return terror.Field(ErrInvalidFieldType, key, val)
			}
		},
		encode: func(rec *R) (string, error) {
			if ts := get(rec); ts.IsZero() {
				return "", terror.Field(errors.Wrap(ErrInvariantViolation, "zero timestamp"), key)
			}

			return get(rec).String(), nil
		},
		present: func(*R) bool { return true },
		equal: func(a, b *R) bool {
			return *get(a) == *get(b)
		},
	}
}

func Enum[R any, E EnumValue, PE interface {
	*E
	encoding.TextUnmarshaler
}](key, tag string, get func(*R) *E,
) *Field[R] {
	return &Field[R]{
		Key: key,
		Tag: tag,
		decode: func(rec *R, val any) error {
			str, err := asString(key, val)
			if err != nil {
				return err
			}
			if err = PE(get(rec)).UnmarshalText([]byte(str)); err != nil {
				if !errors.Is(err, ErrInvalidEnumValue) {
					err = errors.Wrapf(ErrInvalidEnumValue, "%v", err)
				}

				return terror.Field(err, key, str)
			}

			return nil
		},
		encode: func(rec *R) (string, error) {
			val := *get(rec)
			if !val.IsValid() {
				return "", terror.Field(errors.Wrapf(ErrInvariantViolation, "out of range enum %#v", val), key, val)
			}
			text, err := val.MarshalText()
			if err != nil {
				return "", terror.Field(errors.Wrapf(ErrInvariantViolation, "%v", err), key, val)
			}

			return string(text), nil
		},
		present: func(*R) bool { return true },
		equal: func(a, b *R) bool {
			return *get(a) == *get(b)
		},
	}
}

// AsText marks the field's tag-value form as a <text>...</text> block.
func (f *Field[R]) AsText() *Field[R] {
	f.Text = true

	return f
}

func asString(key string, val any) (string, error) {
	switch typed := val.(type) {
	case string:
		return typed, nil
	case []byte:
		return string(typed), nil
	default:
		return "", terror.Field(ErrInvalidFieldType, key, val)
	}
}
