// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"errors"
	"fmt"

	"github.com/ik5/speex/engine"
	"go.uber.org/zap"
)

var (
	// ErrUnknownRequest indicates a control opcode the engine does not know.
	ErrUnknownRequest = errors.New("unknown control request")

	// ErrInvalidParameter indicates a control value the engine rejected.
	ErrInvalidParameter = errors.New("invalid control parameter")

	// ErrEndOfStream indicates the bit-stream holds no further frame.
	ErrEndOfStream = errors.New("end of stream")

	// ErrCorruptStream indicates a frame that could not be decoded.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrBufferTooSmall indicates an output buffer shorter than one frame.
	ErrBufferTooSmall = errors.New("output buffer too small for frame")

	// ErrUnknownMode indicates a mode id outside the defined set.
	ErrUnknownMode = errors.New("unknown coder mode")

	// ErrClosed is the panic value for any use of a closed coder.
	ErrClosed = errors.New("use of closed coder")
)

// ControlError is returned by control accessors. It wraps ErrUnknownRequest
// or ErrInvalidParameter and records the opcode that failed.
type ControlError struct {
	Request engine.Request
	Err     error
}

func (e *ControlError) Error() string {
	return fmt.Sprintf("%s %s (%d)", e.Err, e.Request, int32(e.Request))
}

func (e *ControlError) Unwrap() error { return e.Err }

// ContractViolation is the panic value raised when an engine returns a
// status outside the documented set. It means the engine and this package
// disagree about the boundary, which no caller can recover from.
type ContractViolation struct {
	Op      string
	Request engine.Request // unused for decode
	Status  engine.Status  // for get, the undefined value read back
}

func (v *ContractViolation) Error() string {
	switch v.Op {
	case opControl:
		return fmt.Sprintf("engine contract violation: control %s returned status %d", v.Request, int32(v.Status))
	case opGet:
		return fmt.Sprintf("engine contract violation: %s returned undefined value %d", v.Request, int32(v.Status))
	}
	return fmt.Sprintf("engine contract violation: %s returned status %d", v.Op, int32(v.Status))
}

const (
	opControl = "control"
	opDecode  = "decode"
	opGet     = "get"
)

func checkControl(log *zap.Logger, req engine.Request, st engine.Status) error {
	switch st {
	case engine.StatusOK:
		return nil
	case engine.StatusUnknownRequest:
		return &ControlError{Request: req, Err: ErrUnknownRequest}
	case engine.StatusInvalidParameter:
		return &ControlError{Request: req, Err: ErrInvalidParameter}
	}

	violate(log, &ContractViolation{Op: opControl, Request: req, Status: st})
	return nil
}

func checkDecode(log *zap.Logger, st engine.Status) error {
	switch st {
	case engine.StatusOK:
		return nil
	case engine.StatusEndOfStream:
		return ErrEndOfStream
	case engine.StatusCorruptStream:
		return ErrCorruptStream
	}

	violate(log, &ContractViolation{Op: opDecode, Status: st})
	return nil
}

func violate(log *zap.Logger, v *ContractViolation) {
	log.Error("engine contract violation",
		zap.String("op", v.Op),
		zap.Stringer("request", v.Request),
		zap.Int32("status", int32(v.Status)),
	)
	panic(v)
}
