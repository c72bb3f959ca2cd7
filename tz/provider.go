package tz

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata" // fallback when the platform has no zoneinfo

	"github.com/ngrash/zotime/tzif"
)

// ErrNotFound is returned when a timezone identifier cannot be resolved.
var ErrNotFound = errors.New("timezone not found")

// notFoundError returns an error for name which unwraps to ErrNotFound.
func notFoundError(name string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return fmt.Errorf("%w: %q: %v", ErrNotFound, name, cause)
}

// Provider loads rule sets from a timezone database.
type Provider interface {
	// Load returns the zone for name or an error wrapping ErrNotFound.
	Load(name string) (Zone, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(name string) (Zone, error)

// Load calls f(name).
func (f ProviderFunc) Load(name string) (Zone, error) { return f(name) }

// LocationProvider resolves names with time.LoadLocation, i.e. from the
// platform zoneinfo, $ZONEINFO, or the database embedded in the binary.
// The name "Local" is not a zone identifier and is rejected; the system
// zone is only available as Resolver.Default.
type LocationProvider struct{}

// Load implements Provider.
func (LocationProvider) Load(name string) (Zone, error) {
	if name == "" || name == localName {
		return nil, notFoundError(name, nil)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, notFoundError(name, err)
	}
	return LocationZone(loc), nil
}

// DirProvider resolves names to TZif files below the root of FS, e.g. a
// zoneinfo directory. Files are validated before they are loaded.
type DirProvider struct {
	FS fs.FS
}

// NewDirProvider returns a DirProvider reading from dir.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{FS: os.DirFS(dir)}
}

// Load implements Provider.
func (p *DirProvider) Load(name string) (Zone, error) {
	if name == "" || name == "." || !fs.ValidPath(name) {
		return nil, notFoundError(name, nil)
	}
	b, err := fs.ReadFile(p.FS, name)
	if err != nil {
		return nil, notFoundError(name, err)
	}
	data, err := tzif.DecodeData(bytes.NewReader(b))
	if err != nil {
		return nil, notFoundError(name, err)
	}
	if err := tzif.Validate(data); err != nil {
		return nil, notFoundError(name, err)
	}
	loc, err := time.LoadLocationFromTZData(name, b)
	if err != nil {
		return nil, notFoundError(name, err)
	}
	return LocationZone(loc), nil
}
