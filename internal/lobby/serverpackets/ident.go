// Package serverpackets builds the wire bytes for every message the lobby
// server sends. Handshake packets are zlib-framed; everything after login is
// a quoted command line. Несколько констант здесь — непонятная магия
// оригинального протокола; клиент без них не работает.
package serverpackets

import "github.com/udisondev/ienet/internal/protocol"

// legacySalt is an opaque value the original EarthNet service sent in its
// Ident reply. Its meaning is unknown; the client expects it verbatim.
const legacySalt = 0x1aff3b3c

// Ident builds the Ident-OK handshake reply.
func Ident() ([]byte, error) {
	payload := make([]byte, 0, 24)
	payload = protocol.AppendUint32(payload, 0) // OK status
	payload = protocol.AppendUint32(payload, 16)
	for range 4 {
		payload = protocol.AppendUint32(payload, legacySalt)
	}
	return protocol.EncodeFrame(payload)
}
