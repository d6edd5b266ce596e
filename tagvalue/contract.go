// SPDX-License-Identifier: ice License 1.0

package tagvalue

import (
	"github.com/pkg/errors"
)

// Public API.

var (
	ErrMalformed = errors.New("malformed tag-value input")
	// ErrUnrepresentable is returned for values no tag-value reader can get back verbatim.
	ErrUnrepresentable = errors.New("value can't be written as tag-value")
)

type (
	// Pair is one `Tag: value` entry of an SPDX tag-value document.
	Pair struct {
		Tag   string
		Value string
		// Text makes Write wrap the value in <text>...</text> even when it could do without.
		Text bool
	}
)

// Private API.

const (
	separator = ": "
	textOpen  = "<text>"
	textClose = "</text>"
)
