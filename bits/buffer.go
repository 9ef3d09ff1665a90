// SPDX-License-Identifier: EPL-2.0

package bits

import (
	"fmt"
	"slices"
)

// initialSize matches the default byte store of the Speex bit packer.
const initialSize = 2000

// MaxWidth is the widest value Pack and the Unpack family accept.
const MaxWidth = 32

// Buffer packs and unpacks bit fields over owned or borrowed storage.
type Buffer struct {
	data  []byte
	owned bool

	// Cursors are in bits. rpos <= wpos <= len(data)*8 holds at all times.
	wpos int
	rpos int

	closed bool
}

// New returns an empty Buffer that owns and grows its storage.
func New() *Buffer {
	return &Buffer{
		data:  make([]byte, 0, initialSize),
		owned: true,
	}
}

// NewOver returns an empty Buffer bound to buf. The capacity is fixed to
// len(buf). The caller keeps ownership of buf and must not modify it while the
// Buffer is bound to it.
func NewOver(buf []byte) *Buffer {
	return &Buffer{data: buf}
}

// SetStorage rebinds the Buffer to borrowed storage buf and resets both
// cursors. Previously written content is dropped.
func (b *Buffer) SetStorage(buf []byte) {
	b.mustBeOpen()
	b.data = buf
	b.owned = false
	b.wpos = 0
	b.rpos = 0
}

// Owned reports whether the Buffer owns its storage.
func (b *Buffer) Owned() bool { return b.owned }

// Cap returns the fixed capacity in bytes of borrowed storage, or -1 when
// the storage is owned and grows on demand.
func (b *Buffer) Cap() int {
	if b.owned {
		return -1
	}
	return len(b.data)
}

// Len returns the number of bits written.
func (b *Buffer) Len() int { return b.wpos }

// ByteCount returns the number of bytes needed to hold every written bit,
// counting a trailing partial byte as a whole one.
func (b *Buffer) ByteCount() int { return (b.wpos + 7) >> 3 }

// Remaining returns the number of written bits not yet read.
func (b *Buffer) Remaining() uint { return uint(b.wpos - b.rpos) }

// Reset empties the Buffer. Storage is kept but its content is no longer
// reachable through either cursor.
func (b *Buffer) Reset() {
	b.mustBeOpen()
	b.wpos = 0
	b.rpos = 0
}

// Rewind moves the read cursor back to the first bit, leaving written content
// in place.
func (b *Buffer) Rewind() {
	b.mustBeOpen()
	b.rpos = 0
}

// Close releases the storage binding. Any later use of the Buffer panics.
// Close is idempotent.
func (b *Buffer) Close() {
	b.data = nil
	b.wpos = 0
	b.rpos = 0
	b.closed = true
}

// Pack appends the n low-order bits of value, most significant first.
func (b *Buffer) Pack(value uint32, n int) error {
	b.mustBeOpen()
	checkWidth("pack", n)
	if n == 0 {
		return nil
	}
	if err := b.reserve(n); err != nil {
		return err
	}

	for i := n - 1; i >= 0; i-- {
		idx := b.wpos >> 3
		mask := byte(1) << (7 - uint(b.wpos&7))
		if (value>>uint(i))&1 == 1 {
			b.data[idx] |= mask
		} else {
			b.data[idx] &^= mask
		}
		b.wpos++
	}

	return nil
}

// Peek returns the next bit without moving the read cursor.
func (b *Buffer) Peek() (uint32, error) {
	return b.PeekBits(1)
}

// PeekBits returns the next n bits as an unsigned value without moving the
// read cursor.
func (b *Buffer) PeekBits(n int) (uint32, error) {
	b.mustBeOpen()
	checkWidth("peek", n)
	return b.read(n, false)
}

// UnpackUnsigned reads the next n bits as an unsigned value.
func (b *Buffer) UnpackUnsigned(n int) (uint32, error) {
	b.mustBeOpen()
	checkWidth("unpack", n)
	return b.read(n, true)
}

// UnpackSigned reads the next n bits as a two's complement value whose sign
// is the top requested bit.
func (b *Buffer) UnpackSigned(n int) (int32, error) {
	b.mustBeOpen()
	checkWidth("unpack", n)
	u, err := b.read(n, true)
	if err != nil {
		return 0, err
	}

	return signExtend(u, n), nil
}

// Advance moves the read cursor n bits forward without returning them.
func (b *Buffer) Advance(n int) error {
	b.mustBeOpen()
	if n < 0 {
		panic(fmt.Sprintf("bits: advance by negative count %d", n))
	}
	if b.rpos+n > b.wpos {
		return ErrEndOfBuffer
	}
	b.rpos += n

	return nil
}

// InsertTerminator pads the write cursor to the next byte boundary with a 0
// bit followed by 1 bits. A decoder that finds fewer bits than a frame header
// treats the rest as the end of the stream, so several frames can share one
// packet without an explicit count. An aligned buffer is left as is.
func (b *Buffer) InsertTerminator() {
	b.mustBeOpen()
	if b.wpos&7 == 0 {
		return
	}

	// The padding stays inside the partial byte, so it always fits.
	_ = b.Pack(0, 1)
	for b.wpos&7 != 0 {
		_ = b.Pack(1, 1)
	}
}

// Write copies the written content into dst, the partial last byte padded
// with zero bits, and returns the number of bytes copied. Nothing is consumed.
func (b *Buffer) Write(dst []byte) int {
	b.mustBeOpen()
	total := b.ByteCount()
	n := copy(dst, b.data[:total])
	if n == total && b.wpos&7 != 0 {
		dst[n-1] &= 0xFF << (8 - uint(b.wpos&7))
	}

	return n
}

// Bytes returns a copy of the written content, zero-padded to a whole byte.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.ByteCount())
	b.Write(out)

	return out
}

// FlushTo copies as many complete bytes as fit into dst and shifts them out
// of the Buffer. A trailing partial byte is kept for the next flush. It
// returns the number of bytes copied.
func (b *Buffer) FlushTo(dst []byte) int {
	b.mustBeOpen()
	n := min(len(dst), b.wpos>>3)
	if n == 0 {
		return 0
	}
	copy(dst, b.data[:n])

	copy(b.data, b.data[n:b.ByteCount()])
	b.wpos -= n << 3
	b.rpos = max(0, b.rpos-n<<3)

	return n
}

// ReadFrom replaces the content with data and rewinds the read cursor.
// Borrowed storage that is too small fails with ErrCapacityExceeded and the
// Buffer is left unchanged.
func (b *Buffer) ReadFrom(data []byte) error {
	b.mustBeOpen()
	if !b.owned && len(data) > len(b.data) {
		return ErrCapacityExceeded
	}

	b.wpos = 0
	b.rpos = 0
	if b.owned {
		b.grow(len(data))
	}
	copy(b.data, data)
	b.wpos = len(data) << 3

	return nil
}

// AppendBytes appends whole bytes after the written content. Bytes the read
// cursor has fully passed are discarded first, so a decoder can keep feeding
// a bounded Buffer from a transport.
func (b *Buffer) AppendBytes(data []byte) error {
	b.mustBeOpen()
	b.compact()
	if err := b.reserve(len(data) << 3); err != nil {
		return err
	}

	if b.wpos&7 == 0 {
		copy(b.data[b.wpos>>3:], data)
		b.wpos += len(data) << 3
		return nil
	}

	for _, c := range data {
		_ = b.Pack(uint32(c), 8)
	}

	return nil
}

// compact drops whole bytes that precede the read cursor.
func (b *Buffer) compact() {
	drop := b.rpos >> 3
	if drop == 0 {
		return
	}
	copy(b.data, b.data[drop:b.ByteCount()])
	b.wpos -= drop << 3
	b.rpos -= drop << 3
}

// reserve makes room for n more bits after the write cursor.
func (b *Buffer) reserve(n int) error {
	need := (b.wpos + n + 7) >> 3
	if need <= len(b.data) {
		return nil
	}
	if !b.owned {
		return ErrCapacityExceeded
	}
	b.grow(need)

	return nil
}

func (b *Buffer) grow(need int) {
	if need > len(b.data) {
		b.data = slices.Grow(b.data, need-len(b.data))[:need]
	}
}

func (b *Buffer) read(n int, advance bool) (uint32, error) {
	if n == 0 {
		return 0, nil
	}
	if b.rpos+n > b.wpos {
		return 0, ErrEndOfBuffer
	}

	var v uint32
	pos := b.rpos
	for range n {
		bit := (b.data[pos>>3] >> (7 - uint(pos&7))) & 1
		v = v<<1 | uint32(bit)
		pos++
	}
	if advance {
		b.rpos = pos
	}

	return v, nil
}

func (b *Buffer) mustBeOpen() {
	if b.closed {
		panic(ErrClosed)
	}
}

func signExtend(u uint32, n int) int32 {
	if n == 0 || n == MaxWidth {
		return int32(u)
	}
	if u>>(uint(n)-1)&1 == 1 {
		u |= ^uint32(0) << uint(n)
	}

	return int32(u)
}

func checkWidth(op string, n int) {
	if n < 0 || n > MaxWidth {
		panic(fmt.Sprintf("bits: %s width %d outside 0..%d", op, n, MaxWidth))
	}
}
