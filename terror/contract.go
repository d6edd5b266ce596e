// SPDX-License-Identifier: ice License 1.0

package terror

// Public API.

const (
	FieldKey = "field"
	ValueKey = "value"
)

type (
	// Err is an error that carries structured data about what caused it, e.g. the offending field and raw value.
	Err struct {
		error
		Data map[string]any `json:"data"`
	}
)
