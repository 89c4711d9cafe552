package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_RoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")

	frame, err := EncodeFrame(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(frame)), binary.LittleEndian.Uint32(frame))

	decoded, rest, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
	assert.Empty(t, rest)
}

func TestDecodeFrame_ConsumesMultipleFrames(t *testing.T) {
	first, err := EncodeFrame([]byte("first"))
	require.NoError(t, err)
	second, err := EncodeFrame([]byte("second"))
	require.NoError(t, err)

	buf := append(append([]byte{}, first...), second...)

	payload, rest, err := DecodeFrame(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), payload)

	payload, rest, err = DecodeFrame(rest)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), payload)
	assert.Empty(t, rest)
}

func TestDecodeFrame_Incomplete(t *testing.T) {
	frame, err := EncodeFrame([]byte("payload"))
	require.NoError(t, err)

	for cut := range len(frame) {
		_, rest, err := DecodeFrame(frame[:cut])
		assert.ErrorIs(t, err, ErrIncomplete)
		assert.Equal(t, frame[:cut], rest, "incomplete input must not be consumed")
	}
}

// padToTotal rebuilds a valid frame whose declared and actual size is total,
// padding with zeroes after the zlib stream.
func padToTotal(t *testing.T, total int) []byte {
	t.Helper()
	frame, err := EncodeFrame([]byte("padded"))
	require.NoError(t, err)
	require.LessOrEqual(t, len(frame), total)

	padded := make([]byte, total)
	copy(padded, frame)
	binary.LittleEndian.PutUint32(padded, uint32(total))
	return padded
}

func TestDecodeFrame_MaxSizeBoundary(t *testing.T) {
	payload, rest, err := DecodeFrame(padToTotal(t, MaxFrameSize))
	require.NoError(t, err)
	assert.Equal(t, []byte("padded"), payload)
	assert.Empty(t, rest)

	_, _, err = DecodeFrame(padToTotal(t, MaxFrameSize+1))
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestDecodeFrame_InvalidLength(t *testing.T) {
	buf := binary.LittleEndian.AppendUint32(nil, 3)
	_, _, err := DecodeFrame(buf)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncomplete)
}

func TestDecodeFrame_BadZlib(t *testing.T) {
	buf := binary.LittleEndian.AppendUint32(nil, 8)
	buf = append(buf, 0xde, 0xad, 0xbe, 0xef)
	_, _, err := DecodeFrame(buf)
	assert.Error(t, err)
}

func TestDecodeLine(t *testing.T) {
	buf := append([]byte("/join \"General\""), 0)
	buf = append(buf, []byte("trailing")...)

	line, rest, err := DecodeLine(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("/join \"General\""), line)
	assert.Equal(t, []byte("trailing"), rest)
}

func TestDecodeLine_Incomplete(t *testing.T) {
	_, rest, err := DecodeLine([]byte("no terminator yet"))
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, []byte("no terminator yet"), rest)
}

func TestDecodeLine_TooLong(t *testing.T) {
	_, _, err := DecodeLine(bytes.Repeat([]byte("x"), MaxLineSize+1))
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestEncodeLine(t *testing.T) {
	line, rest, err := DecodeLine(EncodeLine([]byte("/error \"oops\"")))
	require.NoError(t, err)
	assert.Equal(t, []byte("/error \"oops\""), line)
	assert.Empty(t, rest)
}

func TestBlock_RoundTrip(t *testing.T) {
	buf := AppendBlock(nil, []byte("hello"))
	buf = AppendBlock(buf, nil)

	block, rest, err := ReadBlock(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), block)

	block, rest, err = ReadBlock(rest)
	require.NoError(t, err)
	assert.Empty(t, block)
	assert.Empty(t, rest)
}

func TestReadBlock_Truncated(t *testing.T) {
	buf := binary.LittleEndian.AppendUint32(nil, 10)
	buf = append(buf, []byte("short")...)
	_, _, err := ReadBlock(buf)
	assert.Error(t, err)
}
