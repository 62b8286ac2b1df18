package mwire

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

var ErrWireType = errors.New("unexpected wire type")

// ExecuteInstructions walks every field of one message and hands each value
// to the instruction registered for its number. Fields without an instruction
// are skipped.
func ExecuteInstructions(bs []byte, instructions []Instruction) error {
	byNumber := make(map[protowire.Number]Instruction, len(instructions))
	for _, instruction := range instructions {
		byNumber[instruction.Number] = instruction
	}

	for len(bs) > 0 {
		number, typ, n := protowire.ConsumeTag(bs)
		if n < 0 {
			return errors.Wrap(protowire.ParseError(n), "ExecuteInstructions error reading tag")
		}
		bs = bs[n:]

		instruction, ok := byNumber[number]
		if !ok {
			m := protowire.ConsumeFieldValue(number, typ, bs)
			if m < 0 {
				err := errors.Wrapf(
					protowire.ParseError(m), `ExecuteInstructions error skipping field %d`, number,
				)
				return err
			}
			bs = bs[m:]
			continue
		}

		m, err := instruction.Read(typ, bs)
		if err != nil {
			err := errors.Wrapf(err, `ExecuteInstructions error reading key "%s"`, instruction.Key)
			return err
		}
		bs = bs[m:]
	}
	return nil
}

func expectType(got protowire.Type, expected protowire.Type) error {
	if got != expected {
		return errors.Wrapf(ErrWireType, `expected %d; got %d`, expected, got)
	}
	return nil
}

func consumeVarint(typ protowire.Type, bs []byte) (uint64, int, error) {
	if err := expectType(typ, protowire.VarintType); err != nil {
		return 0, 0, err
	}
	v, n := protowire.ConsumeVarint(bs)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(typ protowire.Type, bs []byte) ([]byte, int, error) {
	if err := expectType(typ, protowire.BytesType); err != nil {
		return nil, 0, err
	}
	v, n := protowire.ConsumeBytes(bs)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func CreateVarintReadFunction[T ~int32 | ~uint32 | ~int64 | ~uint64](dst *T) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeVarint(typ, bs)
		if err != nil {
			return 0, err
		}
		*dst = T(v)
		return n, nil
	}
}

func CreateBoolReadFunction(dst *bool) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeVarint(typ, bs)
		if err != nil {
			return 0, err
		}
		*dst = protowire.DecodeBool(v)
		return n, nil
	}
}

// CreateScaledReadFunction reads an unsigned *T100 field into dst, keeping
// the scale.
func CreateScaledReadFunction(dst *float64) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeVarint(typ, bs)
		if err != nil {
			return 0, err
		}
		*dst = float64(uint32(v))
		return n, nil
	}
}

// CreateZigZagScaledReadFunction reads a signed (sint32) *T100 field into dst.
func CreateZigZagScaledReadFunction(dst *float64) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeVarint(typ, bs)
		if err != nil {
			return 0, err
		}
		*dst = float64(int32(protowire.DecodeZigZag(v)))
		return n, nil
	}
}

func CreateStringReadFunction(dst *string) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeBytes(typ, bs)
		if err != nil {
			return 0, err
		}
		*dst = string(v)
		return n, nil
	}
}

func CreateStringAppendFunction(dst *[]string) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeBytes(typ, bs)
		if err != nil {
			return 0, err
		}
		*dst = append(*dst, string(v))
		return n, nil
	}
}

// CreateRepeatedVarintReadFunction accepts both the packed and the unpacked
// encoding of a repeated scalar.
func CreateRepeatedVarintReadFunction[T ~int32 | ~uint32 | ~int64 | ~uint64](dst *[]T) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		if typ == protowire.VarintType {
			v, n, err := consumeVarint(typ, bs)
			if err != nil {
				return 0, err
			}
			*dst = append(*dst, T(v))
			return n, nil
		}

		packed, n, err := consumeBytes(typ, bs)
		if err != nil {
			return 0, err
		}
		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				err := errors.Wrap(protowire.ParseError(m), "packed varint")
				return 0, err
			}
			*dst = append(*dst, T(v))
			packed = packed[m:]
		}
		return n, nil
	}
}

// CreateMessageReadFunction hands the bytes of an embedded message to read.
func CreateMessageReadFunction(read func(bs []byte) error) ReadFunction {
	return func(typ protowire.Type, bs []byte) (int, error) {
		v, n, err := consumeBytes(typ, bs)
		if err != nil {
			return 0, err
		}
		if err := read(v); err != nil {
			return 0, err
		}
		return n, nil
	}
}

type (
	// SongError locates a song message that could not be read.
	SongError struct {
		Index int
		Err   error
	}
)

func (r SongError) Error() string {
	return fmt.Sprintf("song message %d: %v", r.Index, r.Err)
}

func (r SongError) Unwrap() error {
	return r.Err
}
