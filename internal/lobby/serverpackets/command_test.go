package serverpackets

import (
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	testVersion = uuid.MustParse("534ba248-a87c-4ce9-8bee-bc376aae6134")
	testInvite  = uuid.MustParse("f1ed2bb5-4c0a-4295-9a46-0e7ca57e4135")
)

// line strips the NUL terminator for readable comparisons.
func line(frame []byte) string {
	return string(frame[:len(frame)-1])
}

func TestChatPackets(t *testing.T) {
	assert.Equal(t, `/send "foo" "hello"`, line(PublicMessage("foo", []byte("hello"))))
	assert.Equal(t, `/msg "#General" "foo" "bar" "hi"`,
		line(PrivateMessage("#General", "foo", "bar", []byte("hi"))))
	assert.Equal(t, `/msgc "bar" "hi"`, line(PrivateMessageEcho("bar", []byte("hi"))))
	assert.Equal(t, `/error "Game does not exist"`, line(Error("Game does not exist")))
}

func TestChannelPackets(t *testing.T) {
	assert.Equal(t, `/$channel "General" "0"`, line(NewChannel("General")))
	assert.Equal(t, `/&channel "General"`, line(DropChannel("General")))
	assert.Equal(t, `/join "MyChannel"`, line(JoinChannel("MyChannel")))
}

func TestUserPackets(t *testing.T) {
	assert.Equal(t, `$user "foo" "0"`, line(UserSnapshot("foo")))
	assert.Equal(t, `/$user "foo" "0"`, line(UserJoined("foo", 0, "")))
	assert.Equal(t, `/$user "foo" "0" "#General"`, line(UserJoined("foo", 0, "#General")))
	assert.Equal(t, `/&user "foo"`, line(UserLeft("foo", "")))
	assert.Equal(t, `/&user "foo" "#MyChannel"`, line(UserLeft("foo", "#MyChannel")))
}

func TestGamePackets(t *testing.T) {
	assert.Equal(t,
		`/plays "534ba248-a87c-4ce9-8bee-bc376aae6134" "MyGame" "secret" "0xcb" "f1ed2bb5-4c0a-4295-9a46-0e7ca57e4135"`,
		line(CreateGame(testVersion, "MyGame", []byte("secret"), testInvite)))

	assert.Equal(t,
		`/playc "534ba248-a87c-4ce9-8bee-bc376aae6134" "MyGame" "secret" "0x0100007f" "f1ed2bb5-4c0a-4295-9a46-0e7ca57e4135" "127.0.0.1"`,
		line(JoinGame(testVersion, "MyGame", []byte("secret"), net.IPv4(127, 0, 0, 1), testInvite)))

	assert.Equal(t,
		`/$play "MyGame" "0" "0" "0" "f1ed2bb5-4c0a-4295-9a46-0e7ca57e4135" "0"`,
		line(NewGame("MyGame", testInvite)))

	assert.Equal(t, `/&play "MyGame"`, line(DropGame("MyGame")))
}

func TestSyncStats(t *testing.T) {
	assert.Equal(t, `/syncstats "2" "2" "1" "1" "0" "" "1"`, line(SyncStats(2, 2, 1, 1, 1)))
}
