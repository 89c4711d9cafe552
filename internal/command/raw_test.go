package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_VerbOnly(t *testing.T) {
	raw, err := ParseLine([]byte("/noparams"))
	require.NoError(t, err)
	assert.Equal(t, Raw{Verb: "noparams"}, raw)

	raw, err = ParseLine([]byte("/withextraspace   "))
	require.NoError(t, err)
	assert.Equal(t, "withextraspace", raw.Verb)
	assert.Empty(t, raw.Params)
}

func TestParseLine_OptionalSlash(t *testing.T) {
	raw, err := ParseLine([]byte("join General"))
	require.NoError(t, err)
	assert.Equal(t, "join", raw.Verb)
	require.Len(t, raw.Params, 1)
	assert.Equal(t, []byte("General"), raw.Params[0])
}

func TestParseLine_LowercasesVerb(t *testing.T) {
	raw, err := ParseLine([]byte("/JOIN General"))
	require.NoError(t, err)
	assert.Equal(t, "join", raw.Verb)
}

func TestParseLine_Params(t *testing.T) {
	raw, err := ParseLine([]byte(`/cmd  param1 param2 " a longer param" param4 "" "open ended  `))
	require.NoError(t, err)
	assert.Equal(t, "cmd", raw.Verb)
	assert.Equal(t, [][]byte{
		[]byte("param1"),
		[]byte("param2"),
		[]byte(" a longer param"),
		[]byte("param4"),
		[]byte(""),
		[]byte("open ended  "),
	}, raw.Params)
}

func TestParseLine_Invalid(t *testing.T) {
	for _, line := range []string{
		" /leading space",
		"/WAT? is this",
		`/cmd a"b"`,
	} {
		_, err := ParseLine([]byte(line))
		assert.Error(t, err, "line %q", line)
	}
}

func TestParse_EmptyLineIsNoOp(t *testing.T) {
	assert.Equal(t, NoOp{}, Parse(nil))
	assert.Equal(t, NoOp{}, Parse([]byte("   ")))
}

func TestParse_Malformed(t *testing.T) {
	cmd := Parse([]byte(" /invalid"))
	assert.Equal(t, Malformed{Reason: "Received message is invalid"}, cmd)
}

func TestFromRaw(t *testing.T) {
	tests := []struct {
		line string
		want ClientCommand
	}{
		{`/send "hello" "world"`, Send{Message: []byte("hello world")}},
		{`/msg "bar" "hi"`, PrivateMsg{Target: "bar", Message: []byte("hi")}},
		{`/msg "#General" "hi" "there"`, PrivateMsg{Target: "#General", Message: []byte("hi there")}},
		{`/join "MyChannel"`, Join{Channel: "MyChannel"}},
		{`/join My Channel`, Join{Channel: "My Channel"}},
		{`/plays "" "MyGame" "secret"`, HostGame{Name: "MyGame", Password: []byte("secret")}},
		{`/playc "MyGame" "secret"`, JoinGame{Name: "MyGame", Password: []byte("secret")}},
		{`/wat`, Unknown{Verb: "wat"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse([]byte(tt.line)), "line %q", tt.line)
	}
}

func TestFromRaw_MissingParams(t *testing.T) {
	tests := []struct {
		line   string
		reason string
	}{
		{"/send", "Missing parameters for /send"},
		{"/msg target", "Missing parameters for /msg"},
		{"/join", "Missing parameters for /join"},
		{`/plays "" "MyGame"`, "Missing parameters for /plays"},
		{"/playc onlyname", "Missing parameters for /playc"},
	}
	for _, tt := range tests {
		assert.Equal(t, Malformed{Reason: tt.reason}, Parse([]byte(tt.line)), "line %q", tt.line)
	}
}
