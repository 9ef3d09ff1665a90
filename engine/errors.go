// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrUnknownEngine indicates a name missing from the registry.
	ErrUnknownEngine = errors.New("unknown engine")

	// ErrUnsupportedMode indicates an engine that cannot serve a mode.
	ErrUnsupportedMode = errors.New("mode not supported by engine")
)
