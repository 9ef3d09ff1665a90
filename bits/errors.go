// SPDX-License-Identifier: EPL-2.0

package bits

import "errors"

var (
	// ErrCapacityExceeded indicates a write that does not fit borrowed storage.
	ErrCapacityExceeded = errors.New("bit buffer capacity exceeded")

	// ErrEndOfBuffer indicates a read past the write cursor.
	ErrEndOfBuffer = errors.New("end of bit buffer")

	// ErrClosed is the panic value for any use of a closed Buffer.
	ErrClosed = errors.New("use of closed bit buffer")
)
