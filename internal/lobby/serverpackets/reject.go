package serverpackets

import "github.com/udisondev/ienet/internal/protocol"

const rejectCode = 2

// Reject builds a handshake rejection with a human-readable reason. The
// client shows the reason and may retry the failed phase.
func Reject(reason string) ([]byte, error) {
	payload := make([]byte, 0, 8+len(reason))
	payload = protocol.AppendUint32(payload, rejectCode)
	payload = protocol.AppendBlock(payload, []byte(reason))
	return protocol.EncodeFrame(payload)
}
