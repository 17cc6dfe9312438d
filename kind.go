package argcheck

import (
	"fmt"
	"strings"
)

// Kind is the closed set of schema primitives an argument can be declared as.
type Kind int

const (
	// Integer is a base-10 integer with an optional sign.
	Integer Kind = iota + 1
	// Decimal is a base-10 floating point number.
	Decimal
	// StringLiteral accepts any token as-is.
	StringLiteral
	// Flag is a registered "--name" token. As a parameter kind it declares a bare flag whose
	// presence is the value.
	Flag
	// CommandName is any registered command name.
	CommandName
	// Enum is one of a fixed set of allowed values.
	Enum
	// Date is a calendar date written as yyyy-mm-dd.
	Date
	// Custom delegates coercion to a user supplied [CoerceFunc].
	Custom
)

var kindNames = map[Kind]string{
	Integer:       "integer",
	Decimal:       "double",
	StringLiteral: "string",
	Flag:          "flag",
	CommandName:   "command",
	Enum:          "enum",
	Date:          "date",
	Custom:        "custom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind for a schema tag. Both the canonical tag and a few common aliases
// are accepted, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer", "int":
		return Integer, nil
	case "double", "decimal", "float":
		return Decimal, nil
	case "string":
		return StringLiteral, nil
	case "flag", "bool":
		return Flag, nil
	case "command":
		return CommandName, nil
	case "enum":
		return Enum, nil
	case "date":
		return Date, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("unknown argument kind %q", s)
}

// Schema is the ordered kind sequence registered for a command or flag name.
type Schema []Kind

// String renders the schema the way it appears in validation errors, e.g. "[flag, double]".
func (s Schema) String() string {
	parts := make([]string, 0, len(s))
	for _, k := range s {
		parts = append(parts, k.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
