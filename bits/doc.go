// SPDX-License-Identifier: EPL-2.0

// Package bits provides the packed-bit buffer used to serialize coded speech frames.
//
// A Buffer keeps two independent cursors over a byte store: a write cursor that
// Pack advances and a read cursor that the Unpack family advances. Bits are
// packed most-significant-bit first within each byte, which is the layout the
// Speex bit-stream uses on the wire.
//
// # Storage
//
// A Buffer either owns its storage or borrows it from the caller:
//
//	// Owned: grows as needed
//	b := bits.New()
//
//	// Borrowed: fixed capacity, the caller keeps the slice
//	store := make([]byte, 200)
//	b := bits.NewOver(store)
//
// Packing past the end of borrowed storage fails with ErrCapacityExceeded and
// leaves the buffer untouched. Reading past the write cursor fails with
// ErrEndOfBuffer. Nothing is ever silently truncated.
//
// # Packing and Unpacking
//
//	b := bits.New()
//	_ = b.Pack(5, 4)    // 0101
//	_ = b.Pack(1, 1)    // 1
//	b.InsertTerminator() // 011 pads to the byte boundary
//
//	v, err := b.UnpackUnsigned(4) // v == 5
//
// A width outside 0..32 is a programming error and panics. A width of 0 is a
// no-op that returns 0.
//
// # Extracting Bytes
//
// Write copies every written byte (the partial last byte zero-padded) without
// consuming anything. FlushTo copies only complete bytes and shifts them out of
// the buffer, which lets a caller stream a long bit-stream through a small
// transport buffer.
//
// A Buffer is not safe for concurrent use. Each stream should own its Buffer.
package bits
