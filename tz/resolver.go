package tz

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Abbreviations recognized without a database lookup. This is the RFC 2822
// set; Resolver options add more.
var defaultAbbreviations = map[string]Offset{
	"UT":  {Abbrev: "UT", Seconds: 0},
	"GMT": {Abbrev: "GMT", Seconds: 0},
	"Z":   {Abbrev: "Z", Seconds: 0},
	"EST": {Abbrev: "EST", Seconds: -5 * 3600},
	"EDT": {Abbrev: "EDT", Seconds: -4 * 3600, DST: true},
	"CST": {Abbrev: "CST", Seconds: -6 * 3600},
	"CDT": {Abbrev: "CDT", Seconds: -5 * 3600, DST: true},
	"MST": {Abbrev: "MST", Seconds: -7 * 3600},
	"MDT": {Abbrev: "MDT", Seconds: -6 * 3600, DST: true},
	"PST": {Abbrev: "PST", Seconds: -8 * 3600},
	"PDT": {Abbrev: "PDT", Seconds: -7 * 3600, DST: true},
}

// Resolver validates timezone identifiers and resolves them to zones.
//
// Resolved zones are cached for the lifetime of the Resolver. An entry is
// published once and never replaced, so lookups of a cached identifier are
// read-only. A Resolver is safe for concurrent use.
type Resolver struct {
	provider    Provider
	defaultName string
	abbrevs     map[string]Offset
	logger      *slog.Logger

	zones sync.Map // string -> Zone
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProvider sets the timezone database. The default is LocationProvider.
func WithProvider(p Provider) Option {
	return func(r *Resolver) { r.provider = p }
}

// WithDefaultZone sets the ambient zone used when no identifier is given.
// The default is taken from $TZ, falling back to the system local zone.
func WithDefaultZone(name string) Option {
	return func(r *Resolver) { r.defaultName = name }
}

// WithAbbreviation registers an abbreviation for a fixed offset in seconds
// east of UTC. Abbreviations match case-insensitively.
func WithAbbreviation(abbrev string, seconds int, dst bool) Option {
	return func(r *Resolver) {
		key := strings.ToUpper(abbrev)
		r.abbrevs[key] = Offset{Abbrev: key, Seconds: seconds, DST: dst}
	}
}

// WithLogger sets the logger. Resolvers log at debug level only, except for
// an unusable default zone.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// NewResolver returns a Resolver configured by opts.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		provider:    LocationProvider{},
		defaultName: envZone(),
		abbrevs:     make(map[string]Offset, len(defaultAbbreviations)),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for k, v := range defaultAbbreviations {
		r.abbrevs[k] = v
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// envZone returns the zone named by $TZ. A set but empty TZ means UTC, an
// unset TZ the system local zone.
func envZone() string {
	tzEnv, found := os.LookupEnv("TZ")
	if !found {
		return localName
	}
	if tzEnv == "" {
		return "UTC"
	}
	return strings.TrimPrefix(tzEnv, ":")
}

// IsValidIdentifier reports whether name resolves to a zone. It never fails;
// an unknown name is a normal negative result.
func (r *Resolver) IsValidIdentifier(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Resolve returns the zone for name. Accepted are "UTC" in any case, fixed
// offsets like "+09:00", known abbreviations like "PST", and every name the
// provider can load, e.g. "Asia/Tokyo". The error wraps ErrNotFound.
func (r *Resolver) Resolve(name string) (Zone, error) {
	if z, ok := r.zones.Load(name); ok {
		return z.(Zone), nil
	}
	z, err := r.load(name)
	if err != nil {
		r.logger.Debug("timezone not resolved", "zone", name, "error", err)
		return nil, err
	}
	// Concurrent first lookups may both load; only one zone is published.
	actual, loaded := r.zones.LoadOrStore(name, z)
	if !loaded {
		r.logger.Debug("timezone cached", "zone", name)
	}
	return actual.(Zone), nil
}

func (r *Resolver) load(name string) (Zone, error) {
	if name == "" {
		return nil, notFoundError(name, nil)
	}
	if strings.EqualFold(name, "UTC") {
		return UTC, nil
	}
	if seconds, ok := ParseOffset(name); ok {
		return FixedZone(name, seconds, false), nil
	}
	if off, ok := r.abbrevs[strings.ToUpper(name)]; ok {
		return FixedZone(off.Abbrev, off.Seconds, off.DST), nil
	}
	return r.provider.Load(name)
}

// DefaultName returns the identifier of the ambient zone.
func (r *Resolver) DefaultName() string {
	return r.defaultName
}

// Default returns the ambient zone. The name "Local" and a configured
// default that cannot be resolved select the system local zone.
func (r *Resolver) Default() Zone {
	if r.defaultName == localName {
		return localZone
	}
	z, err := r.Resolve(r.defaultName)
	if err != nil {
		r.logger.Warn("default timezone not resolved, using local zone", "zone", r.defaultName, "error", err)
		return localZone
	}
	return z
}

// localName names the system local zone, as in time.Local.
const localName = "Local"

var localZone = LocationZone(time.Local)

var std = sync.OnceValue(func() *Resolver { return NewResolver() })

// Std returns the process-wide Resolver used by the package-level functions.
// It is created on first use with the default options.
func Std() *Resolver { return std() }

// IsValidIdentifier reports whether name resolves with Std().
func IsValidIdentifier(name string) bool { return Std().IsValidIdentifier(name) }

// Resolve resolves name with Std().
func Resolve(name string) (Zone, error) { return Std().Resolve(name) }
