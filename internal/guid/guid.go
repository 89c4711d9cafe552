// Package guid кодирует GUID в legacy Windows-формате, который использует
// клиент Earth 2150: little-endian u32, u16, u16 и затем 8 сырых байт.
// Строковое представление при этом совпадает с оригинальным GUID клиента.
package guid

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Size is the wire size of an encoded GUID.
const Size = 16

// Zero is the all-zero GUID used for games that have not been confirmed yet.
var Zero = uuid.UUID{}

// Decode parses a legacy Windows GUID from the first 16 bytes of data.
func Decode(data []byte) (uuid.UUID, error) {
	if len(data) < Size {
		return uuid.UUID{}, fmt.Errorf("guid needs %d bytes, have %d", Size, len(data))
	}

	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], binary.LittleEndian.Uint32(data[0:4]))
	binary.BigEndian.PutUint16(u[4:6], binary.LittleEndian.Uint16(data[4:6]))
	binary.BigEndian.PutUint16(u[6:8], binary.LittleEndian.Uint16(data[6:8]))
	copy(u[8:], data[8:Size])
	return u, nil
}

// Append encodes u in the legacy layout and appends it to dst.
func Append(dst []byte, u uuid.UUID) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, binary.BigEndian.Uint32(u[0:4]))
	dst = binary.LittleEndian.AppendUint16(dst, binary.BigEndian.Uint16(u[4:6]))
	dst = binary.LittleEndian.AppendUint16(dst, binary.BigEndian.Uint16(u[6:8]))
	return append(dst, u[8:]...)
}
