package instant

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/zotime/tz"
)

// describe renders a view like the fixtures: local fields, abbreviation,
// raw epoch and DST flag.
func describe(l Local) string {
	return fmt.Sprintf("%s %d %v", l, l.Unix, l.DST)
}

func mustNew(t *testing.T, seconds float64, zone string) *Instant {
	t.Helper()
	i, err := New(seconds, zone)
	if err != nil {
		t.Fatalf("New(%v, %q) = %v", seconds, zone, err)
	}
	return i
}

func TestNew(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		i, err := FromUnix(1234567890, "America/Los_Angeles")
		if err != nil {
			t.Fatal(err)
		}
		if got := i.Unix(); got != 1234567890 {
			t.Errorf("Unix() = %d, want 1234567890", got)
		}
	})
	t.Run("float", func(t *testing.T) {
		i := mustNew(t, 1234567890.1234, "America/Los_Angeles")
		if got := i.Unix(); got != 1234567890 {
			t.Errorf("Unix() = %d, want 1234567890", got)
		}
		if got := i.Nanosecond(); math.Abs(float64(got-123400000)) > 1000 {
			t.Errorf("Nanosecond() = %d, want about 123400000", got)
		}
	})
	t.Run("time with offset", func(t *testing.T) {
		in := time.Date(2007, 11, 1, 15, 25, 0, 0, time.FixedZone("", 9*3600))
		i, err := FromTime(in, "America/Los_Angeles")
		if err != nil {
			t.Fatal(err)
		}
		if got := i.Unix(); got != 1193898300 {
			t.Errorf("Unix() = %d, want 1193898300", got)
		}
		if got := i.Zone(); got != "America/Los_Angeles" {
			t.Errorf("Zone() = %q, want America/Los_Angeles", got)
		}
	})
	t.Run("negative fraction", func(t *testing.T) {
		i := mustNew(t, -1.5, "UTC")
		if i.Unix() != -2 || i.Nanosecond() != 500000000 {
			t.Errorf("New(-1.5) = %d s %d ns, want -2 s 500000000 ns", i.Unix(), i.Nanosecond())
		}
		if got := i.Seconds(); got != -1.5 {
			t.Errorf("Seconds() = %v, want -1.5", got)
		}
	})
}

func TestNew_InvalidTimezone(t *testing.T) {
	for _, zone := range []string{"Asia/Paris", "YTC", "Nada/Nada"} {
		_, err := New(0, zone)
		if !errors.Is(err, ErrInvalidTimezone) {
			t.Errorf("New(0, %q) error = %v, want ErrInvalidTimezone", zone, err)
		}
		if !errors.Is(err, tz.ErrNotFound) {
			t.Errorf("New(0, %q) error = %v, want tz.ErrNotFound", zone, err)
		}
	}
}

func TestNew_InvalidSeconds(t *testing.T) {
	for _, s := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, -1e19, 9.3e18, -9.3e18, 1 << 63, math.MaxFloat64} {
		if _, err := New(s, "UTC"); !errors.Is(err, ErrInvalidSeconds) {
			t.Errorf("New(%v) error = %v, want ErrInvalidSeconds", s, err)
		}
	}
	for _, s := range []float64{9.2e18, -9.2e18} {
		if got := mustNew(t, s, "UTC").Seconds(); got != s {
			t.Errorf("New(%v).Seconds() = %v", s, got)
		}
	}
}

func TestAdd_OutOfRange(t *testing.T) {
	i := mustNew(t, 0, "UTC")
	for _, d := range []float64{1e19, -1e19, 9.3e18, math.Inf(1)} {
		i.Add(d)
		if got := i.Seconds(); got != 0 {
			t.Errorf("Add(%v) moved the instant to %v", d, got)
		}
	}

	j, err := FromUnix(math.MaxInt64-10, "UTC")
	if err != nil {
		t.Fatal(err)
	}
	j.Add(100)
	j.AddDuration(time.Minute)
	if got := j.Unix(); got != math.MaxInt64-10 {
		t.Errorf("Unix() = %d, want %d", got, int64(math.MaxInt64-10))
	}

	k, err := FromUnix(math.MinInt64+10, "UTC")
	if err != nil {
		t.Fatal(err)
	}
	k.Sub(100)
	k.AddDuration(-time.Minute)
	if got := k.Unix(); got != math.MinInt64+10 {
		t.Errorf("Unix() = %d, want %d", got, int64(math.MinInt64+10))
	}
	k.Add(5)
	if got := k.Unix(); got != math.MinInt64+15 {
		t.Errorf("Unix() = %d after Add(5), want %d", got, int64(math.MinInt64+15))
	}
}

func TestSeconds_RoundTrip(t *testing.T) {
	for _, s := range []float64{0, 1, -1, 1193898300, 1425808799, -2203891200, 4102444800, 1.5, -0.25} {
		if got := mustNew(t, s, "Europe/Paris").Seconds(); got != s {
			t.Errorf("New(%v).Seconds() = %v", s, got)
		}
	}
}

func TestLocal(t *testing.T) {
	i := mustNew(t, 1193898300, "America/Los_Angeles")

	want := Local{
		Year: 2007, Month: time.October, Day: 31,
		Hour: 23, Minute: 25, Second: 0,
		Offset: -7 * 3600, DST: true, Abbrev: "PDT",
		Unix: 1193898300,
	}
	if diff := cmp.Diff(want, i.Local()); diff != "" {
		t.Errorf("Local() mismatch (-want +got):\n%s", diff)
	}
	if got := i.String(); got != "2007/10/31 23:25:00 PDT" {
		t.Errorf("String() = %q", got)
	}
	if !i.IsDST() || i.UTCOffset() != -7*3600 {
		t.Errorf("IsDST() = %v, UTCOffset() = %d", i.IsDST(), i.UTCOffset())
	}
}

func TestUTC(t *testing.T) {
	i := mustNew(t, 1193898300, "America/Los_Angeles")
	if got, want := describe(i.UTC()), "2007/11/01 06:25:00 UTC 1193898300 false"; got != want {
		t.Errorf("UTC() = %q, want %q", got, want)
	}
}

func TestTime(t *testing.T) {
	i := mustNew(t, 1193898300.25, "America/Los_Angeles")
	got := i.Time()
	if want := time.Unix(1193898300, 250000000); !got.Equal(want) {
		t.Errorf("Time() = %v, want %v", got, want)
	}
	if name, off := got.Zone(); name != "PDT" || off != -7*3600 {
		t.Errorf("Time().Zone() = %q, %d", name, off)
	}
}

func TestAdd(t *testing.T) {
	i := mustNew(t, 1193898300, "Europe/Paris")
	i.Add(111)
	if got := i.Seconds(); got != 1193898300+111 {
		t.Errorf("Seconds() = %v, want %v", got, 1193898300+111)
	}

	i.Sub(111)
	if got := i.Seconds(); got != 1193898300 {
		t.Errorf("Seconds() after Sub = %v", got)
	}

	i.Add(0.75)
	i.Add(0.75)
	if got := i.Seconds(); got != 1193898301.5 {
		t.Errorf("Seconds() after fractional adds = %v", got)
	}

	i.AddDuration(-1500 * time.Millisecond)
	if i.Unix() != 1193898300 || i.Nanosecond() != 0 {
		t.Errorf("after AddDuration = %d s %d ns", i.Unix(), i.Nanosecond())
	}

	i.Add(math.NaN())
	if got := i.Seconds(); got != 1193898300 {
		t.Errorf("Seconds() after Add(NaN) = %v", got)
	}
}

func TestAdd_DST(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		zone   string
		before string
		after  string
	}{
		{
			name:   "into DST",
			start:  time.Date(2015, 3, 8, 9, 59, 59, 0, time.UTC),
			zone:   "America/Los_Angeles",
			before: "2015/03/08 01:59:59 PST 1425808799 false",
			after:  "2015/03/08 03:00:00 PDT 1425808800 true",
		},
		{
			name:   "out of DST",
			start:  time.Date(2014, 10, 26, 0, 59, 59, 0, time.UTC),
			zone:   "Europe/Berlin",
			before: "2014/10/26 02:59:59 CEST 1414285199 true",
			after:  "2014/10/26 02:00:00 CET 1414285200 false",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			i, err := FromTime(c.start, c.zone)
			if err != nil {
				t.Fatal(err)
			}
			if got := describe(i.Local()); got != c.before {
				t.Errorf("before Add(1): %q, want %q", got, c.before)
			}
			i.Add(1)
			if got := describe(i.Local()); got != c.after {
				t.Errorf("after Add(1): %q, want %q", got, c.after)
			}
		})
	}
}

func TestAdd_DayAcrossDST(t *testing.T) {
	// 86400 elapsed seconds across spring forward advance the wall clock by 25 hours.
	i := mustNew(t, float64(time.Date(2015, 3, 8, 8, 0, 0, 0, time.UTC).Unix()), "America/Los_Angeles")
	if got := i.String(); got != "2015/03/08 00:00:00 PST" {
		t.Fatalf("String() = %q", got)
	}
	i.Add(86400)
	if got := i.String(); got != "2015/03/09 01:00:00 PDT" {
		t.Errorf("String() after one day = %q", got)
	}
}

func TestCompare(t *testing.T) {
	a := mustNew(t, 100.5, "UTC")
	b := mustNew(t, 100.5, "Asia/Tokyo")
	c := mustNew(t, 101, "UTC")

	if !a.Equal(b) || a.Compare(b) != 0 {
		t.Error("instants in different zones are not equal")
	}
	if !a.Before(c) || c.Before(a) {
		t.Error("Before() is wrong")
	}
	if !c.After(b) || b.After(c) {
		t.Error("After() is wrong")
	}
}

func TestBuilder_DefaultZone(t *testing.T) {
	b := NewBuilder(tz.NewResolver(tz.WithDefaultZone("Asia/Tokyo")))
	i, err := b.FromUnix(0, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := i.Zone(); got != "Asia/Tokyo" {
		t.Errorf("Zone() = %q, want Asia/Tokyo", got)
	}
	if got := i.String(); got != "1970/01/01 09:00:00 JST" {
		t.Errorf("String() = %q", got)
	}
}

func TestBuilder_FakeDatabase(t *testing.T) {
	// Two made-up transitions: +01:00 standard time, +02:00 DST from 1000.
	db := tz.ProviderFunc(func(name string) (tz.Zone, error) {
		if name != "Fake/Zone" {
			return nil, tz.ErrNotFound
		}
		return fakeZone{}, nil
	})
	b := NewBuilder(tz.NewResolver(tz.WithProvider(db)))

	i, err := b.FromUnix(999, "Fake/Zone")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := describe(i.Local()), "1970/01/01 01:16:39 FST 999 false"; got != want {
		t.Errorf("Local() = %q, want %q", got, want)
	}
	i.Add(1)
	if got, want := describe(i.Local()), "1970/01/01 02:16:40 FDT 1000 true"; got != want {
		t.Errorf("Local() = %q, want %q", got, want)
	}

	if _, err := b.FromUnix(0, "Asia/Tokyo"); !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("FromUnix(Asia/Tokyo) error = %v, want ErrInvalidTimezone", err)
	}
}

type fakeZone struct{}

func (fakeZone) Name() string { return "Fake/Zone" }

func (fakeZone) Lookup(unix int64) tz.Offset {
	if unix < 1000 {
		return tz.Offset{Abbrev: "FST", Seconds: 3600}
	}
	return tz.Offset{Abbrev: "FDT", Seconds: 7200, DST: true}
}
