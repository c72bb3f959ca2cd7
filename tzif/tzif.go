// Package tzif implements the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// The package is used to check zoneinfo files before they are handed to the
// time package, and to list the designations and transitions a file carries.
package tzif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.  Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// In V1, time values are 32bit and in V2 upwards time values are 64bit.
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

const (
	// V1 files contain only the version 1 header and data block.
	V1 Version = 0x00
	// V2 files contain the version 1 header and data block, a version 2+
	// header and data block, and a footer with a POSIX TZ string.
	V2 Version = 0x32
	// V3 is V2 with the TZ string extensions of RFC8536 section 3.3.1.
	V3 Version = 0x33
	// V4 allows a leap second table that is truncated at the start or
	// carries an expiration entry, see tzfile(5).
	V4 Version = 0x34
)

// time sizes of the two data block layouts.
const (
	v1TimeSize = 4
	v2TimeSize = 8
)

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header is the header of a TZif file.
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	Version  Version
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators, zero or Typecnt.
	Isutcnt uint32
	// Isstdcnt is the number of standard/wall indicators, zero or Typecnt.
	Isstdcnt uint32
	// Leapcnt is the number of leap-second records.
	Leapcnt uint32
	// Timecnt is the number of transition times.
	Timecnt uint32
	// Typecnt is the number of local time type records. MUST NOT be zero.
	Typecnt uint32
	// Charcnt is the number of octets of time zone designations,
	// including the trailing NUL. MUST NOT be zero.
	Charcnt uint32
}

// Write writes the Header to w.
func (h Header) Write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

// ReadHeader reads a header including the magic from r.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return h, fmt.Errorf("invalid magic: %v", magic)
	}
	err := binary.Read(r, order, &h)
	return h, err
}

// DataBlock is a TZif data block. The V1 and V2+ layouts only differ in the
// size of time values, which are always widened to 64bit here.
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type DataBlock struct {
	// TransitionTimes are UNIX leap-time values sorted in strictly
	// ascending order at which the rules for computing local time change.
	TransitionTimes []int64

	// TransitionTypes index LocalTimeTypes, one per transition time.
	TransitionTypes []uint8

	LocalTimeTypes []LocalTimeType

	// Designations is an array of NUL-terminated designation strings
	// indexed by LocalTimeType.Idx. Two designations MAY overlap if one is
	// a suffix of the other.
	Designations []byte

	LeapSeconds []LeapSecond

	// StandardWall indicators: true means the transition times of the
	// corresponding local time type were specified as standard time.
	StandardWall []bool

	// UTLocal indicators: true means the transition times of the
	// corresponding local time type were specified as UT.
	UTLocal []bool
}

// LocalTimeType is a six-octet local time type record.
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeType struct {
	// Utoff is the number of seconds to be added to UT in order to
	// determine local time. SHOULD be in the range [-89999, 93599].
	Utoff int32
	// Dst reports whether this type of time is Daylight Saving Time.
	Dst bool
	// Idx is the offset of the designation in DataBlock.Designations.
	Idx uint8
}

// LeapSecond is a leap-second record. Occur is written with TIME_SIZE
// octets, Corr always with four.
type LeapSecond struct {
	Occur int64
	Corr  int32
}

// Designation returns the NUL-terminated string starting at idx.
func (b DataBlock) Designation(idx uint8) string {
	if int(idx) >= len(b.Designations) {
		return ""
	}
	s := b.Designations[idx:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

// Header returns a header of version v whose counts describe b.
func (b DataBlock) Header(v Version) Header {
	return Header{
		Version:  v,
		Isutcnt:  uint32(len(b.UTLocal)),
		Isstdcnt: uint32(len(b.StandardWall)),
		Leapcnt:  uint32(len(b.LeapSeconds)),
		Timecnt:  uint32(len(b.TransitionTimes)),
		Typecnt:  uint32(len(b.LocalTimeTypes)),
		Charcnt:  uint32(len(b.Designations)),
	}
}

func (b DataBlock) write(w io.Writer, timeSize int) error {
	if err := writeTimes(w, b.TransitionTimes, timeSize); err != nil {
		return err
	}
	if err := binary.Write(w, order, b.TransitionTypes); err != nil {
		return err
	}
	for _, t := range b.LocalTimeTypes {
		if err := binary.Write(w, order, t); err != nil {
			return err
		}
	}
	if _, err := w.Write(b.Designations); err != nil {
		return err
	}
	for _, l := range b.LeapSeconds {
		if err := writeTimes(w, []int64{l.Occur}, timeSize); err != nil {
			return err
		}
		if err := binary.Write(w, order, l.Corr); err != nil {
			return err
		}
	}
	if err := binary.Write(w, order, b.StandardWall); err != nil {
		return err
	}
	return binary.Write(w, order, b.UTLocal)
}

func writeTimes(w io.Writer, times []int64, timeSize int) error {
	if timeSize == v2TimeSize {
		return binary.Write(w, order, times)
	}
	narrow := make([]int32, len(times))
	for i, t := range times {
		narrow[i] = int32(t)
	}
	return binary.Write(w, order, narrow)
}

func readTimes(r io.Reader, n uint32, timeSize int) ([]int64, error) {
	if n == 0 {
		return nil, nil
	}
	times := make([]int64, n)
	if timeSize == v2TimeSize {
		err := binary.Read(r, order, times)
		return times, err
	}
	narrow := make([]int32, n)
	if err := binary.Read(r, order, narrow); err != nil {
		return nil, err
	}
	for i, t := range narrow {
		times[i] = int64(t)
	}
	return times, nil
}

// blockSize returns the number of bytes of the data block h describes.
func (h Header) blockSize(timeSize int) int64 {
	ts := int64(timeSize)
	return int64(h.Timecnt)*(ts+1) +
		int64(h.Typecnt)*6 +
		int64(h.Charcnt) +
		int64(h.Leapcnt)*(ts+4) +
		int64(h.Isstdcnt) +
		int64(h.Isutcnt)
}

func readDataBlock(r io.Reader, h Header, timeSize int) (DataBlock, error) {
	var (
		b   DataBlock
		err error
	)
	// Header counts are untrusted. Buffer the block before allocating
	// anything from them so memory use is bounded by the input.
	size := h.blockSize(timeSize)
	var block bytes.Buffer
	if n, err := io.CopyN(&block, r, size); err != nil {
		return b, fmt.Errorf("data block truncated: header needs %d bytes, got %d: %w", size, n, io.ErrUnexpectedEOF)
	}
	r = &block

	if b.TransitionTimes, err = readTimes(r, h.Timecnt, timeSize); err != nil {
		return b, fmt.Errorf("reading transition times: %w", err)
	}
	if h.Timecnt > 0 {
		b.TransitionTypes = make([]uint8, h.Timecnt)
		if _, err := io.ReadFull(r, b.TransitionTypes); err != nil {
			return b, fmt.Errorf("reading transition types: %w", err)
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypes = make([]LocalTimeType, h.Typecnt)
		if err := binary.Read(r, order, b.LocalTimeTypes); err != nil {
			return b, fmt.Errorf("reading local time type record: %w", err)
		}
	}
	if h.Charcnt > 0 {
		b.Designations = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.Designations); err != nil {
			return b, fmt.Errorf("reading time zone designation: %w", err)
		}
	}
	for i := uint32(0); i < h.Leapcnt; i++ {
		occur, err := readTimes(r, 1, timeSize)
		if err != nil {
			return b, fmt.Errorf("reading leap second record: %w", err)
		}
		var corr int32
		if err := binary.Read(r, order, &corr); err != nil {
			return b, fmt.Errorf("reading leap second record: %w", err)
		}
		b.LeapSeconds = append(b.LeapSeconds, LeapSecond{Occur: occur[0], Corr: corr})
	}
	if h.Isstdcnt > 0 {
		b.StandardWall = make([]bool, h.Isstdcnt)
		if err := binary.Read(r, order, b.StandardWall); err != nil {
			return b, fmt.Errorf("reading standard/wall indicator: %w", err)
		}
	}
	if h.Isutcnt > 0 {
		b.UTLocal = make([]bool, h.Isutcnt)
		if err := binary.Read(r, order, b.UTLocal); err != nil {
			return b, fmt.Errorf("reading UT/local indicator: %w", err)
		}
	}
	return b, nil
}

// Footer represents the footer of a version 2+ TZif file.
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
//
// TZString is a POSIX TZ rule for local time after the last transition.
// It is either empty or consistent with the last transition.
type Footer struct {
	TZString []byte
}

const asciiNewLine = byte(0x0A)

// Write writes the footer to w.
func (f Footer) Write(w io.Writer) error {
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return err
	}
	if _, err := w.Write(f.TZString); err != nil {
		return err
	}
	_, err := w.Write([]byte{asciiNewLine})
	return err
}

// ReadFooter reads a footer from r.
func ReadFooter(r io.Reader) (Footer, error) {
	var f Footer
	buf := make([]byte, 1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return f, fmt.Errorf("reading newline: %w", err)
	}
	if buf[0] != asciiNewLine {
		return f, fmt.Errorf("expected newline: %v", buf[0])
	}
	var b []byte
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return f, fmt.Errorf("reading TZ string: %w", err)
		}
		if buf[0] == asciiNewLine {
			break
		}
		b = append(b, buf[0])
	}
	f.TZString = b
	return f, nil
}
