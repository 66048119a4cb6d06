package texel

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_KindOf(t *testing.T) {
	assert.Equal(t, InvalidParameter, KindOf(ErrInvalidRadius))
	assert.Equal(t, DegenerateRange, KindOf(fmt.Errorf("wrapped: %w", ErrDegenerateRange)))
	assert.Equal(t, Kind(0), KindOf(io.EOF))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestErrors_Message(t *testing.T) {
	err := &Error{Kind: DecodeFailure, Msg: "could not decode the image", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "could not decode the image: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "strength should be greater than zero", ErrInvalidStrength.Error())
}

func TestErrors_KindString(t *testing.T) {
	assert.Equal(t, "dimension mismatch", DimensionMismatch.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
