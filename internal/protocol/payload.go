package protocol

import (
	"encoding/binary"
	"fmt"
)

// AppendUint32 appends v little-endian.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendUint64 appends v little-endian.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// AppendBlock appends a length-prefixed byte block. В отличие от префикса
// кадра, этот счётчик не учитывает свои собственные 4 байта.
func AppendBlock(dst, block []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(block)))
	return append(dst, block...)
}

// ReadUint32 reads a little-endian u32 and returns the remainder.
func ReadUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, data, fmt.Errorf("u32 needs 4 bytes, have %d", len(data))
	}
	return binary.LittleEndian.Uint32(data), data[4:], nil
}

// ReadBlock reads a length-prefixed byte block and returns the remainder.
func ReadBlock(data []byte) ([]byte, []byte, error) {
	length, rest, err := ReadUint32(data)
	if err != nil {
		return nil, data, err
	}
	if uint64(length) > uint64(len(rest)) {
		return nil, data, fmt.Errorf("block of %d bytes exceeds remaining %d", length, len(rest))
	}
	return rest[:length], rest[length:], nil
}
