// SPDX-License-Identifier: EPL-2.0

// Package config loads coder settings from YAML and applies them to live
// coders.
//
// A settings file names the engine and mode and sets any of the control
// values; fields left out keep the engine defaults:
//
//	engine: reference
//	mode: wb
//	quality: 8
//	vbr: true
//	high_submode: 4
//	enhancement: true
//
// Load and build a coder:
//
//	s, err := config.LoadFile("coder.yaml")
//	if err != nil {
//		return err
//	}
//	enc, err := s.NewEncoder()
//
// Settings also encode to deterministic CBOR, which is how a stream records
// the configuration it was produced with.
package config
