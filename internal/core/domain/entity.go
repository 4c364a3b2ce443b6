package domain

import (
	"strconv"
	"time"
)

type EntityKind int

const (
	EntityUser EntityKind = iota
	EntityMember
	EntityRole
	EntityTextChannel
	EntityVoiceChannel
)

func (k EntityKind) String() string {
	switch k {
	case EntityUser:
		return "user"
	case EntityMember:
		return "member"
	case EntityRole:
		return "role"
	case EntityTextChannel:
		return "text channel"
	case EntityVoiceChannel:
		return "voice channel"
	default:
		return "entity(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entity is a platform object found by an identity resolver. Raw holds the platform's own value.
type Entity struct {
	Kind EntityKind
	ID   string
	Name string
	// AvatarURL is only set for users and members.
	AvatarURL string
	Raw       any
}

// EntityQuery asks for an entity by ID when set, by name otherwise.
type EntityQuery struct {
	ID   string
	Name string
}

type Emoji struct {
	Name     string
	ID       string
	Animated bool
}

type Invite struct {
	Code string
	URL  string
}

// discordEpoch is the first millisecond of 2015, the epoch of snowflake timestamps.
const discordEpoch = 1420070400000

type Snowflake uint64

func (s Snowflake) Time() time.Time {
	return time.UnixMilli(int64(s>>22) + discordEpoch)
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
