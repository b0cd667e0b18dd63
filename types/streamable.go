package types

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/farmpool/poold/shared"
)

var (
	ErrShortBuffer   = errors.New("streamable: short buffer")
	ErrTrailingBytes = errors.New("streamable: trailing bytes")
	ErrInvalidOption = errors.New("streamable: invalid optional flag")
)

// Encoder serializes values in the chia streamable format: fixed size values are written
// raw, integers big endian, variable size values with a u32 length prefix and optionals with
// a one byte presence flag.
type Encoder struct {
	buf []byte
}

func (e *Encoder) Data() []byte { return e.buf }

// Hash returns the std hash of everything written so far.
func (e *Encoder) Hash() Bytes32 { return shared.StdHash(e.buf) }

func (e *Encoder) Raw(b []byte) { e.buf = append(e.buf, b...) }

func (e *Encoder) Uint8(v uint8) { e.buf = append(e.buf, v) }

func (e *Encoder) Uint32(v uint32) { e.buf = binary.BigEndian.AppendUint32(e.buf, v) }

func (e *Encoder) Uint64(v uint64) { e.buf = binary.BigEndian.AppendUint64(e.buf, v) }

func (e *Encoder) Bool(v bool) {
	if v {
		e.Uint8(1)
	} else {
		e.Uint8(0)
	}
}

func (e *Encoder) Bytes(b []byte) {
	e.Uint32(uint32(len(b)))
	e.Raw(b)
}

func (e *Encoder) Text(s string) { e.Bytes([]byte(s)) }

func (e *Encoder) OptionalBytes32(v *Bytes32) {
	e.Bool(v != nil)
	if v != nil {
		e.Raw(v[:])
	}
}

func (e *Encoder) OptionalG1(v *G1Element) {
	e.Bool(v != nil)
	if v != nil {
		e.Raw(v[:])
	}
}

func (e *Encoder) OptionalUint64(v *uint64) {
	e.Bool(v != nil)
	if v != nil {
		e.Uint64(*v)
	}
}

func (e *Encoder) OptionalString(v *string) {
	e.Bool(v != nil)
	if v != nil {
		e.Text(*v)
	}
}

// Decoder reads the format written by Encoder. The first error sticks and
// every following read returns zero values.
type Decoder struct {
	data []byte
	err  error
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) next(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.data) < n {
		d.err = fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(d.data))
		return nil
	}
	out := d.data[:n]
	d.data = d.data[n:]
	return out
}

func (d *Decoder) Raw(dst []byte) {
	if b := d.next(len(dst)); b != nil {
		copy(dst, b)
	}
}

func (d *Decoder) Uint8() uint8 {
	if b := d.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *Decoder) Uint32() uint32 {
	if b := d.next(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (d *Decoder) Uint64() uint64 {
	if b := d.next(8); b != nil {
		return binary.BigEndian.Uint64(b)
	}
	return 0
}

func (d *Decoder) Bool() bool {
	switch v := d.Uint8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		if d.err == nil {
			d.err = fmt.Errorf("%w: %d", ErrInvalidOption, v)
		}
		return false
	}
}

func (d *Decoder) Bytes() []byte {
	n := d.Uint32()
	b := d.next(int(n))
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (d *Decoder) Text() string { return string(d.Bytes()) }

func (d *Decoder) OptionalBytes32() *Bytes32 {
	if !d.Bool() {
		return nil
	}
	var v Bytes32
	d.Raw(v[:])
	return &v
}

func (d *Decoder) OptionalG1() *G1Element {
	if !d.Bool() {
		return nil
	}
	var v G1Element
	d.Raw(v[:])
	return &v
}

func (d *Decoder) OptionalUint64() *uint64 {
	if !d.Bool() {
		return nil
	}
	v := d.Uint64()
	return &v
}

func (d *Decoder) OptionalString() *string {
	if !d.Bool() {
		return nil
	}
	v := d.Text()
	return &v
}

// Finish returns the first decoding error, or ErrTrailingBytes when input is left over.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if len(d.data) != 0 {
		return fmt.Errorf("%w: %d", ErrTrailingBytes, len(d.data))
	}
	return nil
}
