// Package instant provides a timezone-aware point in time for schedulers.
//
// An Instant stores an absolute Unix time and a timezone identifier. The
// identifier only affects how the time is decomposed into wall-clock fields,
// never how it is stored, so arithmetic across DST transitions is correct by
// construction: Add moves the absolute time and Local re-derives the fields
// from the zone's rules at the new instant.
//
// Times are kept at nanosecond resolution.
package instant

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ngrash/zotime/tz"
)

var (
	// ErrInvalidTimezone is returned when an explicitly given timezone
	// cannot be resolved.
	ErrInvalidTimezone = errors.New("invalid timezone")
	// ErrInvalidSeconds is returned for NaN, infinite or out of range epoch
	// values.
	ErrInvalidSeconds = errors.New("invalid epoch seconds")
)

// invalidTimezoneError returns an error which unwraps to both
// ErrInvalidTimezone and the resolver error.
func invalidTimezoneError(zone string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrInvalidTimezone, zone, err)
}

const nanosPerSecond = int64(time.Second)

// maxSeconds is 2^63, the smallest magnitude a float64 epoch may not reach.
const maxSeconds = 1 << 63

// validSeconds reports whether f is finite and its whole seconds fit an int64.
func validSeconds(f float64) bool {
	return f > -maxSeconds && f < maxSeconds
}

// addSeconds returns sec+d unless the sum, with room for one second carried
// from the nanoseconds, leaves the int64 range.
func addSeconds(sec, d int64) (int64, bool) {
	if (d > 0 && sec >= math.MaxInt64-d) || (d < 0 && sec <= math.MinInt64-d) {
		return 0, false
	}
	return sec + d, true
}

// Instant is an absolute point in time bound to a timezone.
//
// Add, Sub and AddDuration modify the Instant in place. An Instant is not
// safe for concurrent modification.
type Instant struct {
	sec   int64
	nsec  int32 // [0, 1e9)
	zone  string
	rules tz.Zone
}

// Builder creates Instants using a specific Resolver.
// The zero value uses tz.Std().
type Builder struct {
	r *tz.Resolver
}

// NewBuilder returns a Builder resolving timezones with r.
func NewBuilder(r *tz.Resolver) Builder {
	return Builder{r: r}
}

func (b Builder) resolver() *tz.Resolver {
	if b.r == nil {
		return tz.Std()
	}
	return b.r
}

// New returns an Instant for the given (possibly fractional) Unix seconds.
// An empty zone selects the resolver's default zone. The fraction is rounded
// to the nearest nanosecond. Seconds must be finite with a magnitude below
// 2^63.
func (b Builder) New(seconds float64, zone string) (*Instant, error) {
	if !validSeconds(seconds) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeconds, seconds)
	}
	sec, nsec := splitSeconds(seconds)
	return b.build(sec, nsec, zone)
}

// FromUnix returns an Instant for whole Unix seconds.
func (b Builder) FromUnix(sec int64, zone string) (*Instant, error) {
	return b.build(sec, 0, zone)
}

// FromTime returns an Instant for the absolute time of t. The location of t
// only serves to compute that time; the Instant's zone is the zone argument.
func (b Builder) FromTime(t time.Time, zone string) (*Instant, error) {
	return b.build(t.Unix(), int32(t.Nanosecond()), zone)
}

func (b Builder) build(sec int64, nsec int32, zone string) (*Instant, error) {
	r := b.resolver()
	if zone == "" {
		z := r.Default()
		return &Instant{sec: sec, nsec: nsec, zone: z.Name(), rules: z}, nil
	}
	z, err := r.Resolve(zone)
	if err != nil {
		return nil, invalidTimezoneError(zone, err)
	}
	return &Instant{sec: sec, nsec: nsec, zone: zone, rules: z}, nil
}

// New calls Builder.New with the default resolver.
func New(seconds float64, zone string) (*Instant, error) {
	return Builder{}.New(seconds, zone)
}

// FromUnix calls Builder.FromUnix with the default resolver.
func FromUnix(sec int64, zone string) (*Instant, error) {
	return Builder{}.FromUnix(sec, zone)
}

// FromTime calls Builder.FromTime with the default resolver.
func FromTime(t time.Time, zone string) (*Instant, error) {
	return Builder{}.FromTime(t, zone)
}

// splitSeconds splits finite seconds into whole seconds and nanoseconds in
// [0, 1e9), rounding to the nearest nanosecond.
func splitSeconds(f float64) (int64, int32) {
	whole, frac := math.Modf(f)
	sec, nsec := int64(whole), int64(math.Round(frac*1e9))
	return normalize(sec, nsec)
}

func normalize(sec, nsec int64) (int64, int32) {
	sec += nsec / nanosPerSecond
	nsec %= nanosPerSecond
	if nsec < 0 {
		sec--
		nsec += nanosPerSecond
	}
	return sec, int32(nsec)
}

// Zone returns the timezone identifier.
func (i *Instant) Zone() string { return i.zone }

// Seconds returns the Unix time in seconds including the fraction.
func (i *Instant) Seconds() float64 {
	return float64(i.sec) + float64(i.nsec)/1e9
}

// Unix returns the Unix time in whole seconds, rounded down.
func (i *Instant) Unix() int64 { return i.sec }

// Nanosecond returns the nanosecond offset within the second.
func (i *Instant) Nanosecond() int { return int(i.nsec) }

// Add moves the Instant by delta seconds, which may be negative or
// fractional. Only the absolute time changes; a DST transition crossed by
// the move shows up in the next Local call. Deltas that are not finite or
// would move the Instant out of the int64 range are ignored.
func (i *Instant) Add(delta float64) {
	if !validSeconds(delta) {
		return
	}
	ds, dn := splitSeconds(delta)
	sec, ok := addSeconds(i.sec, ds)
	if !ok {
		return
	}
	i.sec, i.nsec = normalize(sec, int64(i.nsec)+int64(dn))
}

// Sub moves the Instant back by delta seconds.
func (i *Instant) Sub(delta float64) {
	i.Add(-delta)
}

// AddDuration moves the Instant by d. A move out of the int64 range is
// ignored.
func (i *Instant) AddDuration(d time.Duration) {
	sec, ok := addSeconds(i.sec, int64(d/time.Second))
	if !ok {
		return
	}
	i.sec, i.nsec = normalize(sec, int64(i.nsec)+int64(d%time.Second))
}

// Compare returns -1, 0 or +1 depending on whether i is before, equal to or
// after j. Zones are not considered.
func (i *Instant) Compare(j *Instant) int {
	switch {
	case i.sec < j.sec || (i.sec == j.sec && i.nsec < j.nsec):
		return -1
	case i.sec == j.sec && i.nsec == j.nsec:
		return 0
	default:
		return 1
	}
}

// Before reports whether i is before j.
func (i *Instant) Before(j *Instant) bool { return i.Compare(j) < 0 }

// After reports whether i is after j.
func (i *Instant) After(j *Instant) bool { return i.Compare(j) > 0 }

// Equal reports whether i and j denote the same absolute time.
func (i *Instant) Equal(j *Instant) bool { return i.Compare(j) == 0 }

// Local returns the wall clock of the Instant in its zone, with the offset
// and DST flag in effect at this very instant.
func (i *Instant) Local() Local {
	return newLocal(i.sec, i.nsec, i.rules.Lookup(i.sec))
}

// UTC returns the wall clock of the Instant in UTC.
func (i *Instant) UTC() Local {
	return newLocal(i.sec, i.nsec, tz.UTC.Lookup(i.sec))
}

// IsDST reports whether daylight saving time is in effect at the Instant.
func (i *Instant) IsDST() bool { return i.rules.Lookup(i.sec).DST }

// UTCOffset returns the offset east of UTC in seconds at the Instant.
func (i *Instant) UTCOffset() int { return i.rules.Lookup(i.sec).Seconds }

// Time returns the Instant as a time.Time carrying the offset in effect.
func (i *Instant) Time() time.Time { return i.Local().Time() }

// String formats the local wall clock as "2006/01/02 15:04:05 MST".
func (i *Instant) String() string { return i.Local().String() }
