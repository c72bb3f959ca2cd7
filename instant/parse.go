package instant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ngrash/zotime/internal/unixtime"
	"github.com/ngrash/zotime/tz"
)

var (
	dateRE  = regexp.MustCompile(`^(\d{4})([/.-])(\d{1,2})([/.-])(\d{1,2})$`)
	clockRE = regexp.MustCompile(`^(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,9}))?$`)
)

// Parse calls Builder.Parse with the default resolver.
func Parse(text string) (*Instant, bool) {
	return Builder{}.Parse(text)
}

// Parse reads "YYYY/MM/DD HH:MM:SS" followed by an optional timezone token,
// e.g. "2015/03/08 01:59:59 America/Los_Angeles". The date separator may
// also be '-' or '.', and seconds may carry a fraction. Without a timezone
// token the resolver's default zone is used.
//
// Parse reports false if the text does not match, a field is out of range,
// or the timezone token is not a valid identifier.
func (b Builder) Parse(text string) (*Instant, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 && len(fields) != 3 {
		return nil, false
	}

	date := dateRE.FindStringSubmatch(fields[0])
	clock := clockRE.FindStringSubmatch(fields[1])
	if date == nil || clock == nil || date[2] != date[4] {
		return nil, false
	}
	year, month, day := atoi(date[1]), atoi(date[3]), atoi(date[5])
	hour, minute, second := atoi(clock[1]), atoi(clock[2]), atoi(clock[3])
	if !unixtime.Valid(year, month, day, hour, minute, second) {
		return nil, false
	}
	nsec := 0
	if frac := clock[4]; frac != "" {
		nsec = atoi(frac + strings.Repeat("0", 9-len(frac)))
	}

	r := b.resolver()
	var (
		name  string
		rules tz.Zone
	)
	if len(fields) == 3 {
		name = fields[2]
		z, err := r.Resolve(name)
		if err != nil {
			return nil, false
		}
		rules = z
	} else {
		rules = r.Default()
		name = rules.Name()
	}

	wall := unixtime.FromDateTime(year, month, day, hour, minute, second)
	return &Instant{sec: wallToUnix(rules, wall), nsec: int32(nsec), zone: name, rules: rules}, true
}

// wallToUnix converts wall-clock seconds in zone z to Unix time. The offset
// at the wall time read as UTC is a first guess; if the guess lands on the
// other side of a transition, the offset found there wins. Skipped and
// repeated wall times resolve the same way time.Date resolves them.
func wallToUnix(z tz.Zone, wall int64) int64 {
	guess := z.Lookup(wall).Seconds
	unix := wall - int64(guess)
	if actual := z.Lookup(unix).Seconds; actual != guess {
		unix = wall - int64(actual)
	}
	return unix
}

// atoi converts strings already matched as digits.
func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
