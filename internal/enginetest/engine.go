// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides a deterministic engine for tests and examples.
//
// The reference engine is not a speech codec. It quantizes every sample to
// 8 bits, but it frames the bit-stream, answers control requests and reports
// statuses the way a real engine does, and it counts every call so tests can
// check what reached the boundary.
//
// Frame layout: a 0 bit, the 4-bit low submode, then for wideband and
// ultra-wideband a 1 bit and the 3-bit high submode, then one signed byte
// per sample. A low submode of 15 or fewer than 5 bits left means end of
// stream.
package enginetest

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ik5/speex/engine"
)

// Name is the registry name tests use for the reference engine.
const Name = "reference"

// Engine is the reference engine. Hooks must be set before the first state
// is created.
type Engine struct {
	// NewErr, when set, is returned by NewEncoder and NewDecoder.
	NewErr error

	// ControlHook is consulted before every control request. When it
	// returns true its status is returned instead of the engine's own.
	ControlHook func(req engine.Request, slot *engine.Slot) (engine.Status, bool)

	// DecodeHook is consulted before every decode, like ControlHook.
	DecodeHook func() (engine.Status, bool)

	created   atomic.Int64
	destroyed atomic.Int64
	encodes   atomic.Int64
	decodes   atomic.Int64
	controls  atomic.Int64

	mu       sync.Mutex
	encoders []*Encoder
	decoders []*Decoder
}

var _ engine.Engine = (*Engine)(nil)

func New() *Engine { return &Engine{} }

func (e *Engine) NewEncoder(d *engine.Descriptor) (engine.EncoderState, error) {
	if e.NewErr != nil {
		return nil, e.NewErr
	}
	e.created.Add(1)

	enc := &Encoder{state: newState(e, d, true)}
	e.mu.Lock()
	e.encoders = append(e.encoders, enc)
	e.mu.Unlock()

	return enc, nil
}

func (e *Engine) NewDecoder(d *engine.Descriptor) (engine.DecoderState, error) {
	if e.NewErr != nil {
		return nil, e.NewErr
	}
	e.created.Add(1)

	dec := &Decoder{state: newState(e, d, false)}
	e.mu.Lock()
	e.decoders = append(e.decoders, dec)
	e.mu.Unlock()

	return dec, nil
}

func (e *Engine) Version() engine.Version {
	return engine.Version{Major: 1, Minor: 2, Micro: 1}
}

// Created returns the number of states handed out.
func (e *Engine) Created() int { return int(e.created.Load()) }

// Destroyed returns the number of Destroy calls.
func (e *Engine) Destroyed() int { return int(e.destroyed.Load()) }

// Live returns the number of states not yet destroyed.
func (e *Engine) Live() int { return e.Created() - e.Destroyed() }

// Encodes returns the number of encode calls across all states.
func (e *Engine) Encodes() int { return int(e.encodes.Load()) }

// Decodes returns the number of decode calls across all states.
func (e *Engine) Decodes() int { return int(e.decodes.Load()) }

// Controls returns the number of control calls across all states.
func (e *Engine) Controls() int { return int(e.controls.Load()) }

// Encoders returns every encoder state created so far.
func (e *Engine) Encoders() []*Encoder {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.encoders)
}

// Decoders returns every decoder state created so far.
func (e *Engine) Decoders() []*Decoder {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.decoders)
}
