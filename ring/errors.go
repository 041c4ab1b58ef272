// SPDX-License-Identifier: EPL-2.0

package ring

import "errors"

var (
	ErrBadCapacity = errors.New("ring capacity must be positive")
	ErrBadChannels = errors.New("channel count must be positive")
)
