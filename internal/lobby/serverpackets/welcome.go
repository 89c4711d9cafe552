package serverpackets

import "github.com/udisondev/ienet/internal/protocol"

// WelcomeParams feeds the Welcome payload sent right after a successful
// login.
type WelcomeParams struct {
	ServerIdent    string
	WelcomeMessage string
	UsersTotal     uint32
	UsersOnline    uint32
	ChannelsTotal  uint32
	GamesTotal     uint32
	GamesAvailable uint32
	GameVersions   []string
	InitialChannel string
}

// Welcome builds the Welcome handshake packet. Большая часть числовых
// констант и три повторяющихся списка версий не расшифрованы; клиент
// принимает рукопожатие только в таком виде.
func Welcome(p WelcomeParams) ([]byte, error) {
	var content []byte
	content = protocol.AppendBlock(content, []byte(p.ServerIdent))
	content = protocol.AppendBlock(content, []byte(p.WelcomeMessage))
	content = protocol.AppendUint64(content, 25)
	content = protocol.AppendUint32(content, 24)
	content = protocol.AppendUint32(content, p.UsersTotal)
	content = protocol.AppendUint32(content, p.UsersOnline)
	content = protocol.AppendUint32(content, p.ChannelsTotal)
	content = protocol.AppendUint32(content, p.GamesTotal)
	content = protocol.AppendUint32(content, 0)
	content = protocol.AppendUint32(content, 18)
	content = protocol.AppendUint32(content, p.GamesAvailable)
	content = protocol.AppendUint32(content, 16)

	// The same version list appears three times.
	for range 3 {
		content = appendVersionList(content, p.GameVersions)
	}
	content = append(content, 0)

	content = protocol.AppendBlock(content, []byte(p.InitialChannel))

	content = protocol.AppendUint32(content, 0)
	content = append(content, make([]byte, 16)...)
	content = protocol.AppendUint32(content, 0)
	content = append(content, make([]byte, 16)...)

	payload := protocol.AppendUint32(nil, 0) // OK status
	payload = protocol.AppendBlock(payload, content)
	return protocol.EncodeFrame(payload)
}

func appendVersionList(dst []byte, versions []string) []byte {
	for i, v := range versions {
		dst = append(dst, byte(i))
		dst = protocol.AppendBlock(dst, []byte(v))
	}
	return append(dst, 0xff)
}
