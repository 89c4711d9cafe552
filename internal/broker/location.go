package broker

// locationKind tags the Location variant.
type locationKind uint8

const (
	locNowhere locationKind = iota
	locChannel
	locGame
)

// Location is where a user currently sits: a channel, a game lobby, or
// nowhere (the brief window between login and the default-channel join).
// Значение сравнимо; имя всегда берётся из канонической записи канала или
// игры, поэтому равенство по значению корректно.
type Location struct {
	kind locationKind
	name string
}

// Nowhere is the zero Location.
var Nowhere = Location{}

// ChannelLocation builds the location of a channel record.
func ChannelLocation(name string) Location {
	return Location{kind: locChannel, name: name}
}

// GameLocation builds the location of a game record.
func GameLocation(name string) Location {
	return Location{kind: locGame, name: name}
}

// IsNowhere reports whether the user is not in any channel or game.
func (l Location) IsNowhere() bool {
	return l.kind == locNowhere
}

// String renders the location the way the wire protocol spells it.
func (l Location) String() string {
	switch l.kind {
	case locChannel:
		return "#" + l.name
	case locGame:
		return "$" + l.name
	default:
		return "[nowhere]"
	}
}
