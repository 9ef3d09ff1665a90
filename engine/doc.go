// SPDX-License-Identifier: EPL-2.0

// Package engine defines the boundary between the coder layer and a numeric
// speech codec.
//
// The codec itself is an external collaborator. It is reached only through
// the Engine, EncoderState and DecoderState interfaces, which mirror the
// classic C surface: init, destroy, encode, decode and a control call taking
// an opcode and a parameter slot.
//
// # Modes
//
// Three modes exist, each with a static Descriptor:
//
//	d, _ := engine.Lookup(engine.WideBand)
//	fmt.Println(d.SampleRate, d.FrameSize) // 16000 320
//
// Descriptors are built lazily once and are read-only afterwards.
//
// # Registry
//
// Engines can be registered by name so that configuration files can pick
// one:
//
//	engine.Register("reference", myEngine)
//	e, err := engine.Open("reference")
package engine
