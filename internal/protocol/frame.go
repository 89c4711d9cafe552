// Package protocol implements the two EarthNet wire framings: zlib-compressed
// handshake frames with a self-inclusive little-endian length prefix, and
// NUL-terminated command lines used after login.
package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const (
	// MaxFrameSize is the maximum total handshake frame size, length prefix
	// included. Клиент никогда не шлёт больше; всё сверх этого — мусор.
	MaxFrameSize = 4096

	// MaxLineSize is the maximum number of buffered bytes a command line may
	// occupy before a NUL terminator shows up.
	MaxLineSize = 1024

	lengthPrefixSize = 4
)

// ErrIncomplete reports that the buffer does not yet hold a complete frame.
// The caller should read more data and retry; nothing has been consumed.
var ErrIncomplete = errors.New("incomplete frame")

// ErrFrameTooLarge reports a handshake frame whose declared length exceeds
// MaxFrameSize. The connection is beyond recovery.
var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// ErrLineTooLong reports a command line that ran past MaxLineSize without a
// NUL terminator. The connection is beyond recovery.
var ErrLineTooLong = errors.New("command line exceeds maximum size")

// DecodeFrame consumes one handshake frame from buf. It returns the inflated
// payload and the unconsumed remainder. On ErrIncomplete the buffer is left
// untouched so the caller can append more data and retry.
func DecodeFrame(buf []byte) (payload, rest []byte, err error) {
	if len(buf) < lengthPrefixSize {
		return nil, buf, ErrIncomplete
	}

	total := binary.LittleEndian.Uint32(buf)
	if total < lengthPrefixSize {
		return nil, buf, fmt.Errorf("invalid frame length %d", total)
	}
	if total > MaxFrameSize {
		return nil, buf, fmt.Errorf("%w: %d", ErrFrameTooLarge, total)
	}
	if len(buf) < int(total) {
		return nil, buf, ErrIncomplete
	}

	zr, err := zlib.NewReader(bytes.NewReader(buf[lengthPrefixSize:total]))
	if err != nil {
		return nil, buf, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()

	payload, err = io.ReadAll(zr)
	if err != nil {
		return nil, buf, fmt.Errorf("inflating frame payload: %w", err)
	}
	return payload, buf[total:], nil
}

// EncodeFrame deflates payload and prepends the self-inclusive length prefix.
func EncodeFrame(payload []byte) ([]byte, error) {
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("deflating frame payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zlib stream: %w", err)
	}

	frame := make([]byte, 0, lengthPrefixSize+compressed.Len())
	frame = binary.LittleEndian.AppendUint32(frame, uint32(lengthPrefixSize+compressed.Len()))
	return append(frame, compressed.Bytes()...), nil
}

// DecodeLine consumes one NUL-terminated command line from buf, returning the
// line without the terminator and the unconsumed remainder.
func DecodeLine(buf []byte) (line, rest []byte, err error) {
	i := bytes.IndexByte(buf, 0)
	if i < 0 {
		if len(buf) > MaxLineSize {
			return nil, buf, fmt.Errorf("%w: %d buffered bytes", ErrLineTooLong, len(buf))
		}
		return nil, buf, ErrIncomplete
	}
	return buf[:i], buf[i+1:], nil
}

// EncodeLine appends the NUL terminator that frames a command line.
func EncodeLine(line []byte) []byte {
	return append(line, 0)
}
