package lut

import (
	"errors"

	"github.com/johnMamish/samdma21-memputer/translate"
)

var f = translate.From

var (
	// ErrSentinels indicates a sentinel byte count mismatch for Build.
	ErrSentinels = errors.New(f("sentinel count"))
)

// ErrTableSize indicates a destination buffer of the wrong length.
type ErrTableSize struct {
	Kind Kind
	Len  int
}

func (err ErrTableSize) Error() string {
	return f("%v table needs %d bytes, got %d", err.Kind, err.Kind.Size(), err.Len)
}

// ErrKind indicates an unknown table kind.
type ErrKind Kind

func (err ErrKind) Error() string {
	return f("unknown table kind %d", int(err))
}

func (err ErrKind) Is(target error) (ok bool) {
	_, ok = target.(ErrKind)
	return
}
