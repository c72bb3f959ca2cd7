// Package tz resolves timezone identifiers to rule sets.
//
// A rule set (Zone) maps an absolute Unix time to the UTC offset, DST flag
// and abbreviation in effect at that instant. Rules come from an external
// database behind the Provider interface; this package never computes DST
// rules itself.
package tz

import (
	"time"
)

// Offset is the local time type in effect at one instant.
type Offset struct {
	// Abbrev is the zone abbreviation, e.g. "PDT" or "+09:00".
	Abbrev string
	// Seconds east of UTC.
	Seconds int
	DST     bool
}

// Zone is a resolved rule set. Implementations are immutable and safe for
// concurrent use.
type Zone interface {
	// Name returns the identifier the zone was resolved from.
	Name() string
	// Lookup returns the offset in effect at the given Unix time.
	Lookup(unix int64) Offset
}

// UTC is the zone with zero offset and no DST.
var UTC Zone = FixedZone("UTC", 0, false)

// FixedZone returns a zone that always uses the given offset. The name
// doubles as abbreviation.
func FixedZone(name string, seconds int, dst bool) Zone {
	return fixedZone{name: name, off: Offset{Abbrev: name, Seconds: seconds, DST: dst}}
}

type fixedZone struct {
	name string
	off  Offset
}

func (z fixedZone) Name() string           { return z.name }
func (z fixedZone) Lookup(_ int64) Offset { return z.off }

// LocationZone adapts a *time.Location to Zone.
func LocationZone(loc *time.Location) Zone {
	return locationZone{loc: loc}
}

type locationZone struct {
	loc *time.Location
}

func (z locationZone) Name() string { return z.loc.String() }

func (z locationZone) Lookup(unix int64) Offset {
	t := time.Unix(unix, 0).In(z.loc)
	abbrev, seconds := t.Zone()
	return Offset{Abbrev: abbrev, Seconds: seconds, DST: t.IsDST()}
}

// ParseOffset parses a fixed numeric offset of the form [+-]HH:MM and
// returns it in seconds east of UTC.
func ParseOffset(s string) (int, bool) {
	if len(s) != len("+00:00") || s[3] != ':' {
		return 0, false
	}
	var sign int
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, false
	}
	hh, ok := twoDigits(s[1:3])
	if !ok || hh > 23 {
		return 0, false
	}
	mm, ok := twoDigits(s[4:6])
	if !ok || mm > 59 {
		return 0, false
	}
	return sign * (hh*3600 + mm*60), true
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
