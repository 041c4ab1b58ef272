// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration file and translates it into
// player, schedule guard and logging settings. Unset keys keep the built-in
// defaults; unknown keys are rejected so typos fail loudly.
package config
