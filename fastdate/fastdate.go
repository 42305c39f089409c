// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package fastdate decomposes a microseconds-since-epoch Timestamp into
// calendar fields without going through time.Time, backing the
// TRUNC_DAY and EXTRACT_YEAR unary operators. Date composition and
// decomposition is based on:
//
//   https://howardhinnant.github.io/date_algorithms.html
package fastdate

const daysPer400YearCycle = 146097
const microsecondsPerSecond = 1000000
const microsecondsPerMinute = 60 * microsecondsPerSecond
const microsecondsPerHour = 60 * microsecondsPerMinute
const microsecondsPerDay = 24 * microsecondsPerHour // 86400000000

const unixDaysToYear0Delta = 719468

// Timestamp is microseconds since the Unix epoch, the same
// representation rowtype.Timestamp uses; EvalUnaryBits casts between
// the two directly rather than converting units.
type Timestamp int64

// DecomposedDate holds a year/month/day triple in the "March-based"
// internal layout the date-algorithms article uses, where month 0 is
// March and the internal year boundary falls between February and
// March rather than between December and January. Only Year is
// exposed here, since
// that's the only field EXTRACT_YEAR needs; Month/Day can be added
// back the same way if TRUNC_MONTH or EXTRACT_DAY are ever wired.
type DecomposedDate struct {
	year  int32
	month uint16 // from 0 to 11 (starting from March)
	day   uint16 // from 0 to 30
}

func floorDivInt64(x, y int64) int64 {
	if x < 0 {
		x = x - y + 1
	}
	return x / y
}

func dateFromUnixDays(days int64) DecomposedDate {
	days += unixDaysToYear0Delta

	era := floorDivInt64(days, daysPer400YearCycle)
	doe := uint32(days - era*daysPer400YearCycle)
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365

	y := int32(yoe) + int32(era)*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	m := (5*doy + 2) / 153
	d := doy - (153*m+2)/5

	return DecomposedDate{
		year:  y,
		month: uint16(m),
		day:   uint16(d),
	}
}

func extractNumDaysAndTimeFromUnixTime(ts Timestamp) (int64, uint64) {
	days := floorDivInt64(int64(ts), microsecondsPerDay)
	return days, uint64(int64(ts) - days*microsecondsPerDay)
}

func dateTimeFromTimestamp(ts Timestamp) (DecomposedDate, uint64) {
	days, time := extractNumDaysAndTimeFromUnixTime(ts)
	return dateFromUnixDays(days), time
}

// Year returns the calendar year, correcting the internal March-based
// layout back to a January-based one.
func (dd DecomposedDate) Year() int32 {
	y := dd.year
	if dd.month >= 10 {
		y++
	}
	return y
}

// TruncDay floors ts to the start (00:00:00) of its calendar day.
func (ts Timestamp) TruncDay() Timestamp {
	return Timestamp(floorDivInt64(int64(ts), microsecondsPerDay) * microsecondsPerDay)
}

// ExtractYear returns the calendar year ts falls in.
func (ts Timestamp) ExtractYear() int32 {
	dd, _ := dateTimeFromTimestamp(ts)
	return dd.Year()
}
