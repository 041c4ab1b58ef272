// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	ErrNotIdle         = errors.New("player is not idle")
	ErrInvalidState    = errors.New("operation not valid in current state")
	ErrDestroyed       = errors.New("player is destroyed")
	ErrNilEngine       = errors.New("engine must not be nil")
	ErrRateMismatch    = errors.New("engine sample rate does not match output")
	ErrChannelMismatch = errors.New("engine channel count does not match output")
	ErrPrerollTimeout  = errors.New("pre-roll did not fill in time")

	ErrBadQuantum  = errors.New("quantum frames must be positive")
	ErrBadBurst    = errors.New("burst frames must be positive")
	ErrBadPreroll  = errors.New("pre-roll must fit in the ring capacity")
	ErrBadCapacity = errors.New("capacity must be a multiple of the quantum")
)
