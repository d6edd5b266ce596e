// SPDX-License-Identifier: ice License 1.0

package log

import (
	"github.com/pkg/errors"
)

func asError(anything any) error {
	switch obj := anything.(type) {
	case error:
		return obj
	case string:
		return errors.New(obj)
	default:
		return errors.Errorf("%#v", obj)
	}
}
