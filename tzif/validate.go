package tzif

import (
	"errors"
	"fmt"
)

// Validate checks the structural rules of RFC8536 section 3 that a reader
// depends on. All violations are reported, joined into one error.
func Validate(d Data) error {
	var errs []error
	if d.Version != d.V1Header.Version || (d.Version > V1 && d.V1Header.Version != d.V2Header.Version) {
		errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v1 header = %v, v2 header = %v", d.Version, d.V1Header.Version, d.V2Header.Version))
	}

	errs = append(errs, validateBlock("v1", d.V1Header, d.V1Data)...)
	if d.Version > V1 {
		errs = append(errs, validateBlock("v2", d.V2Header, d.V2Data)...)
	}

	return errors.Join(errs...)
}

func validateBlock(name string, header Header, data DataBlock) []error {
	var err []error
	count := func(field string, hdr uint32, got int) {
		if int(hdr) != got {
			err = append(err, fmt.Errorf("invalid %s %s: header = %d, data = %d", name, field, hdr, got))
		}
	}

	if header.Isutcnt != 0 && header.Isutcnt != header.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isutcnt (%d): must be 0 or equal to typecnt (%d)", name, header.Isutcnt, header.Typecnt))
	}
	count("isutcnt", header.Isutcnt, len(data.UTLocal))

	if header.Isstdcnt != 0 && header.Isstdcnt != header.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isstdcnt (%d): must be 0 or equal to typecnt (%d)", name, header.Isstdcnt, header.Typecnt))
	}
	count("isstdcnt", header.Isstdcnt, len(data.StandardWall))

	count("leapcnt", header.Leapcnt, len(data.LeapSeconds))

	count("timecnt", header.Timecnt, len(data.TransitionTimes))
	if times, types := len(data.TransitionTimes), len(data.TransitionTypes); times != types {
		err = append(err, fmt.Errorf("inconsistent %s transitions: transition times = %d, transition types = %d", name, times, types))
	}
	for i := 1; i < len(data.TransitionTimes); i++ {
		if data.TransitionTimes[i] <= data.TransitionTimes[i-1] {
			err = append(err, fmt.Errorf("invalid %s transition times: not strictly ascending at index %d", name, i))
			break
		}
	}
	for i, typ := range data.TransitionTypes {
		if int(typ) >= len(data.LocalTimeTypes) {
			err = append(err, fmt.Errorf("invalid %s transition type %d at index %d: typecnt = %d", name, typ, i, len(data.LocalTimeTypes)))
		}
	}

	if header.Typecnt == 0 {
		err = append(err, fmt.Errorf("invalid %s typecnt: must not be zero", name))
	}
	count("typecnt", header.Typecnt, len(data.LocalTimeTypes))
	for i, lt := range data.LocalTimeTypes {
		if int(lt.Idx) >= len(data.Designations) {
			err = append(err, fmt.Errorf("invalid %s local time type %d: designation index %d out of range", name, i, lt.Idx))
		}
	}

	if header.Charcnt == 0 {
		err = append(err, fmt.Errorf("invalid %s charcnt: must not be zero", name))
	}
	count("charcnt", header.Charcnt, len(data.Designations))
	if len(data.Designations) > 0 && data.Designations[len(data.Designations)-1] != 0 {
		err = append(err, fmt.Errorf("invalid %s time zone designations: missing null terminator", name))
	}
	return err
}
