package protocol

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/ienet/internal/guid"
)

// IdentPayload is the first message a client sends after connecting: the GUID
// of its installed game version and a language tag.
type IdentPayload struct {
	GameVersion uuid.UUID
	Language    []byte
}

// LoginPayload carries the chosen username and password. The password is not
// evaluated anywhere; the username decides everything.
type LoginPayload struct {
	Username []byte
	Password []byte
}

// ParseIdent decodes an Ident handshake payload (already inflated).
func ParseIdent(payload []byte) (IdentPayload, error) {
	version, err := guid.Decode(payload)
	if err != nil {
		return IdentPayload{}, fmt.Errorf("reading game version: %w", err)
	}
	language, _, err := ReadBlock(payload[guid.Size:])
	if err != nil {
		return IdentPayload{}, fmt.Errorf("reading language tag: %w", err)
	}
	return IdentPayload{GameVersion: version, Language: language}, nil
}

// ParseLogin decodes a Login handshake payload (already inflated).
func ParseLogin(payload []byte) (LoginPayload, error) {
	username, rest, err := ReadBlock(payload)
	if err != nil {
		return LoginPayload{}, fmt.Errorf("reading username: %w", err)
	}
	password, _, err := ReadBlock(rest)
	if err != nil {
		return LoginPayload{}, fmt.Errorf("reading password: %w", err)
	}
	return LoginPayload{Username: username, Password: password}, nil
}
