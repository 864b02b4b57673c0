package wire

import (
	"bufio"
	"io"
)

// Reader is a sequential, length-tracking primitive reader over a buffered
// byte source. It generalizes the single-level `take`/`limit`/`reset_limit`
// scheme of the original Rust byte_reader into a *stack* of limits, because
// CONNECT nests two independently-bounded regions (connect properties, then
// will properties) inside the packet's own remaining-length region: a
// single current limit cannot describe "the rest of this sub-block" and
// "the rest of the packet" at the same time. See spec.md §4.1.
//
// At any time the reader has either no limit (limited == false) or a
// current limit: a non-negative count of bytes still allowed. Every
// successful read subtracts its byte count from the current limit first,
// so a malformed inner field can never consume bytes belonging to an outer
// region or the next packet.
type Reader struct {
	src     *bufio.Reader
	limit   uint32
	limited bool
	stack   []uint32 // residual byte counts of enclosing regions, outermost first
}

// NewReader wraps any io.Reader with buffering and an empty limit stack.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{src: br}
}

// PushLimit bounds subsequent reads to at most n bytes. If a limit is
// already active, the unconsumed remainder of the current limit is pushed
// onto the stack (to be restored by PopLimit) and n becomes the new
// current limit — n must not exceed the current limit in that case, since
// a sub-region cannot be larger than its enclosing region.
func (r *Reader) PushLimit(n uint32) error {
	if r.limited {
		if n > r.limit {
			return ErrLimitUnderflow
		}
		r.stack = append(r.stack, r.limit-n)
	}
	r.limit = n
	r.limited = true
	return nil
}

// PopLimit restores the most recently pushed residual, combining it with
// whatever bytes remain unread in the current (now-closing) region so that
// bytes left unread inside a sub-region remain unread — and still counted
// — in the outer region.
func (r *Reader) PopLimit() error {
	if !r.limited {
		return ErrNoLimitToPop
	}
	if len(r.stack) == 0 {
		r.limited = false
		r.limit = 0
		return nil
	}
	residual := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.limit += residual
	return nil
}

// HasMore reports whether bytes remain to be read: false if the current
// limit is exactly zero, otherwise whether the underlying buffer has any
// bytes available.
func (r *Reader) HasMore() bool {
	if r.limited && r.limit == 0 {
		return false
	}
	_, err := r.src.Peek(1)
	return err == nil
}

// ConsumeRemaining discards whatever is left of the current limit, used by
// the stream driver (C7) to resynchronize after a packet fails mid-decode.
func (r *Reader) ConsumeRemaining() error {
	if !r.limited {
		return nil
	}
	n := r.limit
	if n == 0 {
		return nil
	}
	discarded, err := io.CopyN(io.Discard, r.src, int64(n))
	r.limit -= uint32(discarded)
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// ReadToLimit reads and returns every remaining byte of the current limit —
// used by PUBLISH to collect its payload, which carries no length prefix of
// its own and instead is simply "whatever is left" (spec.md §4.6.3). With no
// limit active it is an error: every caller of ReadToLimit is inside a
// region pushed by the stream driver.
func (r *Reader) ReadToLimit() ([]byte, error) {
	if !r.limited {
		return nil, ErrNoLimitToPop
	}
	return r.take(r.limit)
}

// take reads exactly n bytes, honoring and updating the current limit.
func (r *Reader) take(n uint32) ([]byte, error) {
	if r.limited && n > r.limit {
		return nil, ErrLimitUnderflow
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r.src, buf); err != nil {
			return nil, ErrUnexpectedEOF
		}
	}
	if r.limited {
		r.limit -= n
	}
	return buf, nil
}

// ReadU8 reads one big-endian byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads two big-endian bytes.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadU32 reads four big-endian bytes.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadVarbyteInt reads an MQTT variable byte integer (1–4 bytes), honoring
// the current limit one byte at a time.
func (r *Reader) ReadVarbyteInt() (uint32, error) {
	return decodeVarbyteInt(r.ReadU8)
}

// ReadUTF8String reads a 2-byte-length-prefixed UTF-8 string, rejecting the
// null/surrogate/non-character code points MQTT forbids outright and the
// control characters it says SHOULD NOT appear (ValidateUTF8StringStrict).
func (r *Reader) ReadUTF8String() (string, error) {
	n, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	buf, err := r.take(uint32(n))
	if err != nil {
		return "", err
	}
	if err := ValidateUTF8StringStrict(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadBinary reads a 2-byte-length-prefixed arbitrary-bytes field.
func (r *Reader) ReadBinary() ([]byte, error) {
	n, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	return r.take(uint32(n))
}
