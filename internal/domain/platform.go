package domain

import "strings"

// Platform enumerates the game platforms a client can report from.
type Platform string

const (
	PlatformNone Platform = ""
	PlatformPC   Platform = "pc"
	PlatformXbox Platform = "xb"
	PlatformPS   Platform = "ps"
)

// ParsePlatform maps free-form platform text to a Platform.
func ParsePlatform(text string) Platform {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "pc":
		return PlatformPC
	case "xbox", "xb", "xb1":
		return PlatformXbox
	case "ps", "ps4", "ps5", "playstation":
		return PlatformPS
	default:
		return PlatformNone
	}
}

// DisplayName returns the human-readable platform label.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformPC:
		return "PC"
	case PlatformXbox:
		return "Xbox"
	case PlatformPS:
		return "Playstation"
	default:
		return "unknown platform"
	}
}
