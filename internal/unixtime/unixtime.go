// Package unixtime converts between civil date/time fields and Unix seconds.
//
// Both directions assume the proleptic Gregorian calendar and ignore leap
// seconds. Neither depends on time.Location: the caller applies the UTC
// offset, which keeps every offset decision with the timezone rule provider.
package unixtime

// FromDateTime converts a given date and time to a Unix timestamp, i.e. the number of seconds since 1970-01-01 00:00:00 UTC.
// It respects leap years. Fields are not normalized; callers validate ranges first (see Valid).
func FromDateTime(year int, month int, day int, hour int, minute int, second int) int64 {
	days := daysFromCivil(int64(year), int64(month), int64(day))
	return days*secondsPerDay + int64(hour)*secondsPerHour + int64(minute)*secondsPerMinute + int64(second)
}

// ToDateTime is the inverse of FromDateTime.
func ToDateTime(unix int64) (year int, month int, day int, hour int, minute int, second int) {
	days := floorDiv(unix, secondsPerDay)
	rem := unix - days*secondsPerDay

	y, m, d := civilFromDays(days)
	return int(y), int(m), int(d), int(rem / secondsPerHour), int(rem % secondsPerHour / secondsPerMinute), int(rem % secondsPerMinute)
}

// Valid reports whether the fields name an existing calendar second.
// Second 60 is rejected since leap seconds are not modelled.
func Valid(year int, month int, day int, hour int, minute int, second int) bool {
	if month < 1 || month > 12 || day < 1 || day > DaysIn(year, month) {
		return false
	}
	return hour >= 0 && hour < 24 && minute >= 0 && minute < 60 && second >= 0 && second < 60
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour

	// daysPerEra is the length of the 400 year Gregorian cycle.
	daysPerEra = 365*400 + 97
	// epochShift moves day zero from 1970-01-01 to 0000-03-01.
	epochShift = 719468
)

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysFromCivil returns the number of days since 1970-01-01.
// Years are counted from March so the leap day is the last day of the year.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPerEra + doe - epochShift
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (y, m, d int64) {
	z := days + epochShift
	era := floorDiv(z, daysPerEra)
	doe := z - era*daysPerEra
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153

	d = doy - (153*mp+2)/5 + 1
	m = mp + 3
	if m > 12 {
		m -= 12
	}
	y = yoe + era*400
	if m <= 2 {
		y++
	}
	return y, m, d
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
