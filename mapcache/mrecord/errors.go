package mrecord

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNilRecord  = errors.New("compact record is nil")
	ErrHashLength = errors.New("hash index list has the wrong length")
	ErrHashIndex  = errors.New("hash index is outside the hex alphabet")
)

type (
	// DecodeError locates a structurally invalid record inside a batch.
	DecodeError struct {
		Index int
		IDInt uint32
		Err   error
	}
)

func (r DecodeError) Error() string {
	return fmt.Sprintf("record %d (id %x): %v", r.Index, r.IDInt, r.Err)
}

func (r DecodeError) Unwrap() error {
	return r.Err
}

func (r DecodeError) Cause() error {
	return r.Err
}
