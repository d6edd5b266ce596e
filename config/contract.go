// SPDX-License-Identifier: ice License 1.0

package config

// Private API.

const (
	applicationConfigFile = "application.yaml"
	envPrefix             = "SPDX"
)
