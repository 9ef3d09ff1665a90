// SPDX-License-Identifier: EPL-2.0

package coder

import (
	"fmt"
	"runtime"

	"github.com/ik5/speex/engine"
	"go.uber.org/zap"
)

// controlState is the part of an engine state every coder drives.
type controlState interface {
	Control(req engine.Request, slot *engine.Slot) engine.Status
	Destroy()
}

// handle owns one engine state and carries the control channel for it.
// A nil ctl means the handle was never opened or is closed.
type handle struct {
	Channel

	desc    *engine.Descriptor
	ctl     controlState
	log     *zap.Logger
	cleanup runtime.Cleanup
}

// leak is the cleanup argument. It must not point back at the handle.
type leak struct {
	state controlState
	log   *zap.Logger
}

func destroyLeaked(l leak) {
	l.log.Warn("coder garbage collected without Close")
	l.state.Destroy()
}

func (h *handle) open(kind string, desc *engine.Descriptor, st controlState, o options) {
	if st == nil {
		panic(fmt.Sprintf("engine returned nil %s state for %s", kind, desc.Name))
	}

	log := o.logger.With(zap.String("coder", kind), zap.Stringer("mode", desc.ID))
	if o.name != "" {
		log = log.With(zap.String("name", o.name))
	}

	h.Channel = NewChannel(h)
	h.desc = desc
	h.ctl = st
	h.log = log

	log.Debug("coder created", zap.Int("frame_size", desc.FrameSize))
}

// Send performs one control request and maps the engine status.
func (h *handle) Send(req engine.Request, slot *engine.Slot) error {
	h.mustBeOpen()
	st := h.ctl.Control(req, slot)
	runtime.KeepAlive(h)

	return checkControl(h.log, req, st)
}

// Mode returns the mode id of the coder.
func (h *handle) Mode() engine.ModeID {
	h.mustBeOpen()
	return h.desc.ID
}

// Descriptor returns the static description of the coder's mode.
func (h *handle) Descriptor() *engine.Descriptor {
	h.mustBeOpen()
	return h.desc
}

func (h *handle) mustBeOpen() {
	if h.ctl == nil {
		panic(ErrClosed)
	}
}

func (h *handle) checkFrame(n int) {
	if n != h.desc.FrameSize {
		panic(fmt.Sprintf("%s frame has %d samples, want %d", h.desc.Name, n, h.desc.FrameSize))
	}
}

// close destroys the engine state once and reports whether it did.
func (h *handle) close() bool {
	if h.ctl == nil {
		return false
	}

	h.cleanup.Stop()
	h.ctl.Destroy()
	h.ctl = nil
	h.log.Debug("coder destroyed")

	return true
}

func (h *handle) lowSubmode() (NBSubmode, error) {
	v, err := h.lowMode()
	if err != nil {
		return 0, err
	}
	if s := NBSubmode(v); s.Valid() {
		return s, nil
	}

	violate(h.log, &ContractViolation{Op: opGet, Request: engine.GetLowMode, Status: engine.Status(v)})
	return 0, nil
}

func (h *handle) setLowSubmode(s NBSubmode) error { return h.setLowMode(int32(s)) }

func (h *handle) wbHighSubmode() (WBSubmode, error) {
	v, err := h.highMode()
	if err != nil {
		return 0, err
	}
	if s := WBSubmode(v); s.Valid() {
		return s, nil
	}

	violate(h.log, &ContractViolation{Op: opGet, Request: engine.GetHighMode, Status: engine.Status(v)})
	return 0, nil
}

func (h *handle) setWBHighSubmode(s WBSubmode) error { return h.setHighMode(int32(s)) }
