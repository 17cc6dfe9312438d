package argcheck

import (
	"fmt"
	"strconv"
	"time"
)

// ValueType discriminates the variants of a [Value].
type ValueType int

const (
	// AbsentValue marks an optional argument that was not supplied. It is the zero value.
	AbsentValue ValueType = iota
	IntValue
	FloatValue
	StringValue
	PresenceValue
	EnumValueType
	DateValueType
)

// Value is a coerced argument. It is comparable, so two parse results can be checked with ==.
type Value struct {
	typ ValueType
	i   int64
	f   float64
	s   string
	d   CalendarDate
}

// CalendarDate is a validated year, month and day triple.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of the date.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Absent returns the marker bound to optional arguments that were not supplied.
func Absent() Value { return Value{} }

func Int(n int64) Value { return Value{typ: IntValue, i: n} }

func Float(f float64) Value { return Value{typ: FloatValue, f: f} }

func String(s string) Value { return Value{typ: StringValue, s: s} }

// Present returns the value bound to a bare flag that appeared in the input.
func Present() Value { return Value{typ: PresenceValue} }

func EnumValue(s string) Value { return Value{typ: EnumValueType, s: s} }

func DateValue(d CalendarDate) Value { return Value{typ: DateValueType, d: d} }

func (v Value) Type() ValueType { return v.typ }

func (v Value) IsAbsent() bool { return v.typ == AbsentValue }

func (v Value) Int() (int64, bool) { return v.i, v.typ == IntValue }

func (v Value) Float() (float64, bool) { return v.f, v.typ == FloatValue }

// Str returns the string payload of a string or enum value.
func (v Value) Str() (string, bool) {
	return v.s, v.typ == StringValue || v.typ == EnumValueType
}

func (v Value) Date() (CalendarDate, bool) { return v.d, v.typ == DateValueType }

// Interface returns the underlying Go value: int64, float64, string, bool, CalendarDate, or nil
// when absent.
func (v Value) Interface() any {
	switch v.typ {
	case IntValue:
		return v.i
	case FloatValue:
		return v.f
	case StringValue, EnumValueType:
		return v.s
	case PresenceValue:
		return true
	case DateValueType:
		return v.d
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.typ {
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	case FloatValue:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringValue, EnumValueType:
		return v.s
	case PresenceValue:
		return "true"
	case DateValueType:
		return v.d.String()
	default:
		return "<absent>"
	}
}
