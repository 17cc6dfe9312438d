package argcheck

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// coerce converts the token at index into a value of the given kind. The parameter supplies the
// allowed values of an enum and the function of a custom kind; it may be nil when only a bare
// schema is known, in which case those kinds accept any token.
func coerce(reg *Registry, p *Param, kind Kind, index int, token string) (Value, *Error) {
	switch kind {
	case Integer:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, newError(ErrTypeCoercion, index, token, "Argument at index %d is not an integer", index)
		}
		return Int(n), nil
	case Decimal:
		f, ok := parseDecimal(token)
		if !ok {
			return Value{}, newError(ErrTypeCoercion, index, token, "Argument at index %d is not a double", index)
		}
		return Float(f), nil
	case StringLiteral:
		return String(token), nil
	case Flag:
		if !reg.IsFlag(token) {
			return Value{}, newError(ErrStructuralMismatch, index, token, "Argument at index %d is not a valid flag", index)
		}
		return Present(), nil
	case CommandName:
		if !reg.IsCommand(token) {
			return Value{}, newError(ErrDomainValidation, index, token, "Argument at index %d is not a valid command", index)
		}
		return EnumValue(token), nil
	case Enum:
		if p != nil && !slices.Contains(p.Values, token) {
			return Value{}, newError(ErrDomainValidation, index, token, "unknown subcommand: %s", token)
		}
		return EnumValue(token), nil
	case Date:
		d, err := parseDate(index, token)
		if err != nil {
			return Value{}, err
		}
		return DateValue(d), nil
	case Custom:
		if p == nil || p.Coerce == nil {
			return String(token), nil
		}
		v, err := p.Coerce(token)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				c := *e
				c.Index, c.Token = index, token
				return Value{}, &c
			}
			ce := newError(ErrTypeCoercion, index, token, "Argument at index %d: %v", index, err)
			ce.err = err
			return Value{}, ce
		}
		return v, nil
	}
	return Value{}, newError(ErrTypeCoercion, index, token, "Argument at index %d has unsupported kind %s", index, kind)
}

// parseDecimal accepts finite base-10 numerals only. Hexadecimal mantissas, digit separators,
// infinities and NaN are rejected even though strconv understands them.
func parseDecimal(token string) (float64, bool) {
	if strings.ContainsAny(token, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseDate parses a yyyy-mm-dd token into a calendar date, rejecting impossible dates such as
// February 29 of a non-leap year.
func ParseDate(token string) (CalendarDate, error) {
	d, err := parseDate(-1, token)
	if err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

func parseDate(index int, token string) (CalendarDate, *Error) {
	prefix := ""
	if index >= 0 {
		prefix = "Argument at index " + strconv.Itoa(index) + ": "
	}
	parts := strings.Split(token, "-")
	if len(parts) != 3 {
		return CalendarDate{}, newError(ErrTypeCoercion, index, token, "%sexpected yyyy-mm-dd, got %q", prefix, token)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || !isDigits(part) {
			return CalendarDate{}, newError(ErrTypeCoercion, index, token, "%sinvalid date %q", prefix, token)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return CalendarDate{}, newError(ErrDomainValidation, index, token, "%sinvalid date %q", prefix, token)
	}
	return CalendarDate{Year: year, Month: time.Month(month), Day: day}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
