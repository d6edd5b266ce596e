// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"github.com/pkg/errors"
)

func New(err error, data map[string]any) *Err {
	return &Err{error: err, Data: data}
}

// Field builds an *Err that names the record field (and, optionally, the raw value) the error is about.
func Field(err error, field string, value ...any) *Err {
	data := map[string]any{FieldKey: field}
	if len(value) > 0 {
		data[ValueKey] = value[0]
	}

	return New(errors.Wrapf(err, "%v", field), data)
}

func As(err error) *Err {
	tErr := new(Err)
	if ok := errors.As(err, tErr); ok {
		return tErr
	}

	return nil
}

func (e *Err) Is(er error) bool {
	return errors.Is(e.error, er)
}

func (e *Err) Unwrap() error {
	return e.error
}

func (e *Err) As(err any) bool {
	o, ok := err.(*Err)
	if ok {
		*o = *e
	}

	return ok
}

func (e *Err) FieldName() string {
	if e == nil {
		return ""
	}
	field, _ := e.Data[FieldKey].(string) //nolint:errcheck,revive // Not an error.

	return field
}

func (e *Err) Value() any {
	if e == nil {
		return nil
	}

	return e.Data[ValueKey]
}
