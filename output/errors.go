// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	ErrAlreadyAttached = errors.New("a reader is already attached")
)
