// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var ErrBadValue = errors.New("invalid configuration value")
