package tzif

import (
	"fmt"
	"io"
	"slices"
)

// Data represents a TZif file.
type Data struct {
	Version Version

	V1Header Header
	V1Data   DataBlock

	V2Header Header
	V2Data   DataBlock
	V2Footer Footer
}

// Build returns a file of version v holding b. Headers are derived from the
// data. Files of version V2 and later get the minimal V1 block allowed by
// RFC8536 section 4, since readers use the 64bit block.
func Build(v Version, b DataBlock, f Footer) Data {
	if v == V1 {
		return Data{Version: V1, V1Header: b.Header(V1), V1Data: b}
	}
	v1 := DataBlock{
		LocalTimeTypes: []LocalTimeType{{}},
		Designations:   []byte{0},
	}
	return Data{
		Version:  v,
		V1Header: v1.Header(v),
		V1Data:   v1,
		V2Header: b.Header(v),
		V2Data:   b,
		V2Footer: f,
	}
}

// Block returns the header and data block a reader should use:
// the 64bit block for version 2+ files, the 32bit one otherwise.
func (d Data) Block() (Header, DataBlock) {
	if d.Version > V1 {
		return d.V2Header, d.V2Data
	}
	return d.V1Header, d.V1Data
}

// Transition is a transition time together with the local time type it
// switches to.
type Transition struct {
	At     int64
	Utoff  int32
	Dst    bool
	Abbrev string
}

// Transitions lists the transitions of the file in ascending order.
// Entries with an out of range type index are skipped; Validate reports them.
func (d Data) Transitions() []Transition {
	_, b := d.Block()
	var ts []Transition
	for i, at := range b.TransitionTimes {
		if i >= len(b.TransitionTypes) || int(b.TransitionTypes[i]) >= len(b.LocalTimeTypes) {
			continue
		}
		lt := b.LocalTimeTypes[b.TransitionTypes[i]]
		ts = append(ts, Transition{At: at, Utoff: lt.Utoff, Dst: lt.Dst, Abbrev: b.Designation(lt.Idx)})
	}
	return ts
}

// Abbreviations returns the sorted, distinct designations used by the
// local time types of the file.
func (d Data) Abbreviations() []string {
	_, b := d.Block()
	var names []string
	for _, lt := range b.LocalTimeTypes {
		if n := b.Designation(lt.Idx); n != "" {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Encode writes the given TZif data to the given writer.
// If the version is V1, the V2 fields are not written.
func (d Data) Encode(w io.Writer) error {
	if err := d.V1Header.Write(w); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := d.V1Data.write(w, v1TimeSize); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if d.Version > V1 {
		if err := d.V2Header.Write(w); err != nil {
			return fmt.Errorf("write v2 header: %w", err)
		}
		if err := d.V2Data.write(w, v2TimeSize); err != nil {
			return fmt.Errorf("write v2 data: %w", err)
		}
		if err := d.V2Footer.Write(w); err != nil {
			return fmt.Errorf("write v2 footer: %w", err)
		}
	}
	return nil
}

// DecodeData reads the TZif Data from the given reader.
// If the version is V1, the V2 fields are left empty.
func DecodeData(r io.Reader) (Data, error) {
	var (
		d   Data
		err error
	)
	d.V1Header, err = ReadHeader(r)
	if err != nil {
		return d, fmt.Errorf("read v1 header: %w", err)
	}
	d.Version = d.V1Header.Version

	d.V1Data, err = readDataBlock(r, d.V1Header, v1TimeSize)
	if err != nil {
		return d, fmt.Errorf("read v1 data block: %w", err)
	}

	if d.Version > V1 {
		d.V2Header, err = ReadHeader(r)
		if err != nil {
			return d, fmt.Errorf("read v2 header: %w", err)
		}
		d.V2Data, err = readDataBlock(r, d.V2Header, v2TimeSize)
		if err != nil {
			return d, fmt.Errorf("read v2 data block: %w", err)
		}
		d.V2Footer, err = ReadFooter(r)
		if err != nil {
			return d, fmt.Errorf("read footer: %w", err)
		}
	}

	return d, nil
}
