// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	// ErrInvalidSettings indicates a malformed or out-of-range setting.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrNotApplicable indicates a setting the target coder has no control for.
	ErrNotApplicable = errors.New("setting not applicable to coder")
)
