package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reader walks a message body left to right, matching the fixed field order
// of the §4.1 catalog. Every method advances the cursor only on success.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) need(n int) error {
	if r.pos+n > len(r.buf) {
		return fmt.Errorf("wire: short body: need %d bytes at offset %d, have %d", n, r.pos, len(r.buf))
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *reader) f64() (float64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return math.Float64frombits(v), nil
}

func (r *reader) str(n int) (string, error) {
	if err := r.need(n); err != nil {
		return "", err
	}
	s := stripLatin1(r.buf[r.pos : r.pos+n])
	r.pos += n
	return s, nil
}

// remaining returns every byte not yet consumed.
func (r *reader) remaining() []byte {
	out := make([]byte, len(r.buf)-r.pos)
	copy(out, r.buf[r.pos:])
	r.pos = len(r.buf)
	return out
}

// writer builds a message body in the same fixed field order the reader
// consumes, so encode(decode(b)) round-trips byte for byte.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) i32(v int32) {
	w.u32(uint32(v))
}

func (w *writer) f32(v float32) {
	w.u32(math.Float32bits(v))
}

func (w *writer) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) str(s string, n int) {
	w.buf = append(w.buf, padLatin1(s, n)...)
}

func (w *writer) raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) bytes() []byte {
	return w.buf
}
