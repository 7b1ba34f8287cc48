/*
Package codec contains the protobuf wire helpers used by all models and
messages to implement the Persistent interface.

Every persisted type declares its field numbers in its own Marshal and
Unmarshal methods. The produced bytes follow the protocol buffers wire
format (proto3 semantics, zero values are omitted), so the state can be read
by any protobuf client that knows the schema.
*/
package codec

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// Wire types used by the protobuf encoding.
const (
	WireVarint  = 0
	WireFixed64 = 1
	WireBytes   = 2
	WireFixed32 = 5
)

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Encoder appends protobuf encoded fields to a gogo proto.Buffer.
type Encoder struct {
	buf proto.Buffer
	err error
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) key(field int, wire int) {
	e.buf.EncodeVarint(uint64(field)<<3 | uint64(wire))
}

// Bytes writes a length delimited field. Empty values are skipped.
func (e *Encoder) Bytes(field int, b []byte) *Encoder {
	if len(b) == 0 {
		return e
	}
	e.key(field, WireBytes)
	e.buf.EncodeRawBytes(b)
	return e
}

// RepeatedBytes writes every element as a separate length delimited field.
// Unlike Bytes, empty elements are kept so that the element count survives
// the encoding.
func (e *Encoder) RepeatedBytes(field int, list [][]byte) *Encoder {
	for _, b := range list {
		e.key(field, WireBytes)
		e.buf.EncodeRawBytes(b)
	}
	return e
}

// String writes a string field. Empty values are skipped.
func (e *Encoder) String(field int, s string) *Encoder {
	return e.Bytes(field, []byte(s))
}

// Uint64 writes a varint field. Zero is skipped.
func (e *Encoder) Uint64(field int, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.key(field, WireVarint)
	e.buf.EncodeVarint(v)
	return e
}

// Int64 writes a signed varint field using the two's complement
// representation, as protobuf int64 does. Zero is skipped.
func (e *Encoder) Int64(field int, v int64) *Encoder {
	return e.Uint64(field, uint64(v))
}

// Bool writes a varint encoded boolean. False is skipped.
func (e *Encoder) Bool(field int, v bool) *Encoder {
	if !v {
		return e
	}
	return e.Uint64(field, 1)
}

// Message writes a nested message. A nil message is skipped, a non nil
// message is always written even if its encoding is empty.
func (e *Encoder) Message(field int, m Marshaller) *Encoder {
	if e.err != nil || isNil(m) {
		return e
	}
	raw, err := m.Marshal()
	if err != nil {
		e.err = errors.Wrapf(err, "field %d", field)
		return e
	}
	e.key(field, WireBytes)
	e.buf.EncodeRawBytes(raw)
	return e
}

// Result returns the encoded bytes or the first error.
func (e *Encoder) Result() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf.Bytes(), nil
}

// Decoder iterates over protobuf encoded fields.
type Decoder struct {
	raw []byte
	pos int

	field int
	wire  int
}

// NewDecoder returns a decoder reading from given bytes.
func NewDecoder(raw []byte) *Decoder {
	return &Decoder{raw: raw}
}

// Next moves to the next field. It returns false once all the data was
// consumed.
func (d *Decoder) Next() (bool, error) {
	if d.pos >= len(d.raw) {
		return false, nil
	}
	key, n := proto.DecodeVarint(d.raw[d.pos:])
	if n == 0 {
		return false, errors.Wrap(errors.ErrInput, "malformed field key")
	}
	d.pos += n
	d.field = int(key >> 3)
	d.wire = int(key & 7)
	if d.field <= 0 {
		return false, errors.Wrapf(errors.ErrInput, "illegal field number %d", d.field)
	}
	return true, nil
}

// Field returns the number of the current field.
func (d *Decoder) Field() int {
	return d.field
}

// Bytes reads a length delimited value. Returned slice is a copy.
func (d *Decoder) Bytes() ([]byte, error) {
	if d.wire != WireBytes {
		return nil, d.wireErr(WireBytes)
	}
	size, n := proto.DecodeVarint(d.raw[d.pos:])
	if n == 0 {
		return nil, errors.Wrap(errors.ErrInput, "malformed length")
	}
	d.pos += n
	end := d.pos + int(size)
	if size > uint64(len(d.raw)) || end > len(d.raw) {
		return nil, errors.Wrapf(errors.ErrInput, "field %d: unexpected end of data", d.field)
	}
	b := append([]byte(nil), d.raw[d.pos:end]...)
	d.pos = end
	return b, nil
}

// String reads a string value.
func (d *Decoder) String() (string, error) {
	b, err := d.Bytes()
	return string(b), err
}

// Uint64 reads a varint value.
func (d *Decoder) Uint64() (uint64, error) {
	if d.wire != WireVarint {
		return 0, d.wireErr(WireVarint)
	}
	v, n := proto.DecodeVarint(d.raw[d.pos:])
	if n == 0 {
		return 0, errors.Wrapf(errors.ErrInput, "field %d: malformed varint", d.field)
	}
	d.pos += n
	return v, nil
}

// Uint32 reads a varint value that must fit into 32 bits.
func (d *Decoder) Uint32() (uint32, error) {
	v, err := d.Uint64()
	if err != nil {
		return 0, err
	}
	if v > 1<<32-1 {
		return 0, errors.Wrapf(errors.ErrOverflow, "field %d", d.field)
	}
	return uint32(v), nil
}

// Int64 reads a varint encoded signed value.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Bool reads a varint encoded boolean.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.Uint64()
	return v != 0, err
}

// Message reads a nested message into dest.
func (d *Decoder) Message(dest interface{ Unmarshal([]byte) error }) error {
	raw, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "field %d", d.field)
	}
	return nil
}

// Skip consumes the value of the current field. Unknown fields must be
// skipped to stay forward compatible.
func (d *Decoder) Skip() error {
	switch d.wire {
	case WireVarint:
		_, err := d.Uint64()
		return err
	case WireBytes:
		_, err := d.Bytes()
		return err
	case WireFixed64:
		return d.advance(8)
	case WireFixed32:
		return d.advance(4)
	default:
		return errors.Wrapf(errors.ErrInput, "field %d: unsupported wire type %d", d.field, d.wire)
	}
}

func (d *Decoder) advance(n int) error {
	if d.pos+n > len(d.raw) {
		return errors.Wrapf(errors.ErrInput, "field %d: unexpected end of data", d.field)
	}
	d.pos += n
	return nil
}

func (d *Decoder) wireErr(want int) error {
	return errors.Wrapf(errors.ErrInput, "field %d: wire type %d, want %d", d.field, d.wire, want)
}

func isNil(m Marshaller) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
