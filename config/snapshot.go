// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2), so equal
// settings always produce identical snapshots.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("config: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("config: CBOR decoder initialization failed: " + err.Error())
	}
}

// plain has the fields of Settings without its methods.
type plain Settings

// MarshalCBOR encodes s as a deterministic CBOR snapshot.
func (s Settings) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(plain(s))
}

// UnmarshalCBOR decodes a snapshot written by MarshalCBOR and validates it.
func (s *Settings) UnmarshalCBOR(data []byte) error {
	var p plain
	if err := decMode.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	restored := Settings(p)
	if err := restored.Validate(); err != nil {
		return err
	}

	*s = restored
	return nil
}
