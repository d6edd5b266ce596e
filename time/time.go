// SPDX-License-Identifier: ice License 1.0

package time

import (
	"context"
	"database/sql/driver"
	stdlibtime "time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

func Now() Time {
	return New(stdlibtime.Now())
}

func New(time stdlibtime.Time) Time {
	if time.IsZero() {
		return Time{}
	}

	return Time{Time: time.UTC().Truncate(stdlibtime.Second)}
}

// Parse accepts RFC3339 with an explicit UTC designation (`Z`, `+00:00` or `-00:00`), nothing around it. Fractional seconds are dropped.
func Parse(value string) (Time, error) {
	time, err := stdlibtime.Parse(stdlibtime.RFC3339Nano, value)
	if err != nil {
		return Time{}, errors.Wrapf(ErrInvalidFormat, "%q: %v", value, err)
	}
	if _, offset := time.Zone(); offset != 0 {
		return Time{}, errors.Wrapf(ErrNotUTC, "%q", value)
	}

	return New(time), nil
}

func MustParse(value string) Time {
	time, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return time
}

func (t Time) String() string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(Layout)
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = Time{}

		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed

	return nil
}

func (t Time) MarshalBinary() ([]byte, error) {
	return t.MarshalText()
}

func (t *Time) UnmarshalBinary(data []byte) error {
	return t.UnmarshalText(data)
}

func (t *Time) MarshalJSON(_ context.Context) ([]byte, error) {
	if t.IsZero() {
		return []byte(null), nil
	}

	return []byte(`"` + t.String() + `"`), nil
}

func (t *Time) UnmarshalJSON(_ context.Context, bytes []byte) error {
	data := string(bytes)
	if data == null || data == `""` || data == "" {
		*t = Time{}

		return nil
	}
	if len(data) < 1+1 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.Wrapf(ErrInvalidFormat, "expected a json string, got %v", data)
	}

	return t.UnmarshalText([]byte(data[1 : len(data)-1]))
}

func (t Time) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil //nolint:nilnil // A null node is what we want.
	}

	return t.String(), nil
}

func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*t = Time{}

		return nil
	}

	return t.UnmarshalText([]byte(node.Value))
}

func (t *Time) EncodeMsgpack(enc *msgpack.Encoder) error {
	return errors.Wrap(enc.EncodeString(t.String()), "failed to EncodeString")
}

func (t *Time) DecodeMsgpack(dec *msgpack.Decoder) error {
	val, err := dec.DecodeString()
	if err != nil {
		return errors.Wrap(err, "failed to Time.DecodeMsgpack.DecodeString")
	}

	return t.UnmarshalText([]byte(val))
}

func (t *Time) Scan(src any) error {
	switch val := src.(type) {
	case nil:
		*t = Time{}

		return nil
	case stdlibtime.Time:
		*t = New(val)

		return nil
	case string:
		return t.UnmarshalText([]byte(val))
	case []byte:
		return t.UnmarshalText(val)
	default:
		return errors.Wrapf(ErrInvalidFormat, "unsupported scan source %T", src)
	}
}

func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}

	return t.Time, nil
}
