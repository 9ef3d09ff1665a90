// SPDX-License-Identifier: EPL-2.0

// Package coder drives speech encoder and decoder states through the engine
// boundary with typed, checked operations.
//
// Coders are typed by their mode. A WBEncoder can only be asked about
// wideband submodes, and an NBDecoder only about narrowband ones:
//
//	enc, err := coder.NewWBEncoder(eng)
//	if err != nil {
//		return err
//	}
//	defer enc.Close()
//
//	if err := enc.SetHighSubmode(coder.WBQuantizedHigh); err != nil {
//		return err
//	}
//
//	buf := bits.New()
//	frame := make([]float32, enc.Descriptor().FrameSize)
//	err = enc.Encode(frame, buf)
//
// # Control requests
//
// Every configuration call is a single control request. The engine answers
// with a status that becomes nil, a *ControlError wrapping ErrUnknownRequest
// or ErrInvalidParameter, or, for anything else, a panic carrying a
// *ContractViolation.
//
// # Run-time modes
//
// When the mode comes from a stream header or a config file, use
// NewDynamicEncoder or NewDynamicDecoder. They expose the shared operations
// directly and can be narrowed to the typed coder with IntoNB, IntoWB or
// IntoUWB.
//
// # Lifetime
//
// Close releases the engine state and may be called more than once. Every
// other method panics after Close. A coder that becomes unreachable without
// Close is released by a runtime cleanup and a warning is logged.
package coder
