package shortcut

import (
	"fmt"
	"hash/crc32"
	"strconv"
)

// GameID is the 64 bit game identifier used by launchers. The low 24
// bits hold the app id, the next 8 the Kind and the high 32 the mod or
// shortcut hash.
type GameID uint64

type Kind uint8

const (
	KindApp Kind = iota
	KindGameMod
	KindShortcut
	KindP2P
)

func (k Kind) String() string {
	switch k {
	case KindApp:
		return "app"
	case KindGameMod:
		return "mod"
	case KindShortcut:
		return "shortcut"
	case KindP2P:
		return "p2p"
	default:
		return fmt.Sprintf("<kind %d>", uint8(k))
	}
}

const (
	appIDMask = 0xFFFFFF
	hashBit   = 0x80000000
)

// AppID returns the game id of a regular app.
func AppID(appID uint32) GameID {
	return GameID(appID & appIDMask)
}

// ShortcutID returns the game id of the shortcut with the given target
// and name. The target is hashed in its quoted form whether or not exe
// carries quotes.
func ShortcutID(exe, appName string) GameID {
	sum := crc32.ChecksumIEEE([]byte(quote(exe) + appName))
	return GameID(uint64(sum|hashBit)<<32 | uint64(KindShortcut)<<24)
}

// ModID returns the game id of a mod living in modFolder of the host app.
func ModID(hostAppID uint32, modFolder string) GameID {
	sum := crc32.ChecksumIEEE([]byte(modFolder))
	return GameID(uint64(sum|hashBit)<<32 | uint64(KindGameMod)<<24 | uint64(hostAppID&appIDMask))
}

func (g GameID) AppID() uint32 {
	return uint32(g) & appIDMask
}

func (g GameID) Kind() Kind {
	return Kind(g >> 24)
}

// ModHash returns the high 32 bits.
func (g GameID) ModHash() uint32 {
	return uint32(g >> 32)
}

func (g GameID) String() string {
	return strconv.FormatUint(uint64(g), 10)
}

func ParseGameID(s string) (GameID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad game id %q: %w", s, err)
	}
	return GameID(v), nil
}
