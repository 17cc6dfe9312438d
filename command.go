package argcheck

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mfridman/argcheck/pkg/suggest"
)

// Command declares the argument shape of a single command.
type Command struct {
	// Name is always a single word representing the command's name. It is the leading token of a
	// command line.
	Name string

	// Usage provides the command's full usage pattern. When empty, one is derived from Params.
	//
	// Example: "sub [--left <double>] --right <double>"
	Usage string

	// ShortHelp is a brief description of the command's purpose, shown in usage listings.
	ShortHelp string

	// Params is the ordered argument shape. Positional parameters and flags may be mixed; flags
	// must appear in the input in the order they are declared here.
	Params []Param

	// Exec is optional execution logic invoked by [Parser.Run] after a successful parse.
	Exec func(ctx context.Context, s *State) error
}

// CoerceFunc converts a raw token into a value for [Custom] parameters. Returning an [*Error]
// keeps its code; any other error is reported as a type coercion failure.
type CoerceFunc func(token string) (Value, error)

// Param is one named argument of a command.
type Param struct {
	// Name is the key the coerced value is bound to in [Arguments].
	Name string

	// Kind is how the value token is validated and coerced. For a flag parameter, Kind [Flag]
	// declares a bare flag that takes no value and binds [Present] when given.
	Kind Kind

	// Flag, when set, makes this a named parameter introduced by the given "--name" token.
	Flag string

	// Optional allows a flag parameter to be omitted. Positional parameters are always required.
	Optional bool

	// Default is bound when an optional flag is omitted. The zero value binds [Absent].
	Default Value

	// Values is the allowed value set for [Enum] parameters.
	Values []string

	// Coerce is required for [Custom] parameters.
	Coerce CoerceFunc

	// Check is an optional domain constraint applied after coercion. Failures are reported as
	// [ErrDomainValidation].
	Check func(Value) error

	// Help is a short description used in usage output.
	Help string
}

// arity is the number of value tokens that follow the parameter's flag.
func (p *Param) arity() int {
	if p.Kind == Flag {
		return 0
	}
	return 1
}

// schema returns the kind sequence a command line matching every parameter would have.
func (c *Command) schema() Schema {
	var s Schema
	for _, p := range c.Params {
		if p.Flag == "" {
			s = append(s, p.Kind)
			continue
		}
		s = append(s, Flag)
		if p.arity() > 0 {
			s = append(s, p.Kind)
		}
	}
	return s
}

func (c *Command) flags() []string {
	var flags []string
	for _, p := range c.Params {
		if p.Flag != "" {
			flags = append(flags, p.Flag)
		}
	}
	return flags
}

// flagSchema is the kind sequence registered under the parameter's flag name.
func (p *Param) flagSchema() Schema {
	if p.arity() == 0 {
		return Schema{}
	}
	return Schema{p.Kind}
}

var flagPattern = regexp.MustCompile(`^--\w+$`)

// NonNegative is a [Param.Check] that rejects negative integers and decimals.
func NonNegative(v Value) error {
	if n, ok := v.Int(); ok && n < 0 {
		return errors.New("must be non-negative")
	}
	if f, ok := v.Float(); ok && f < 0 {
		return errors.New("must be non-negative")
	}
	return nil
}

func validateCommand(c *Command) error {
	if c == nil {
		return errors.New("command is nil")
	}
	if c.Name == "" {
		return errors.New("command has no name")
	}
	if strings.ContainsFunc(c.Name, func(r rune) bool { return r == ' ' || r == '\t' }) {
		return fmt.Errorf("command name %q contains spaces, must be a single word", c.Name)
	}
	names := make(map[string]bool, len(c.Params))
	flags := make(map[string]bool)
	for i, p := range c.Params {
		if p.Name == "" {
			return fmt.Errorf("command %q: parameter at position %d has no name", c.Name, i)
		}
		if names[p.Name] {
			return fmt.Errorf("command %q: duplicate parameter %q", c.Name, p.Name)
		}
		names[p.Name] = true
		if _, ok := kindNames[p.Kind]; !ok {
			return fmt.Errorf("command %q: parameter %q has invalid kind %s", c.Name, p.Name, p.Kind)
		}
		if p.Flag == "" {
			if p.Optional || !p.Default.IsAbsent() {
				return fmt.Errorf("command %q: positional parameter %q cannot be optional", c.Name, p.Name)
			}
			if p.Kind == Flag {
				return fmt.Errorf("command %q: positional parameter %q cannot be of kind flag", c.Name, p.Name)
			}
		} else {
			if !flagPattern.MatchString(p.Flag) {
				return fmt.Errorf("command %q: flag %q must look like --name", c.Name, p.Flag)
			}
			if flags[p.Flag] {
				return fmt.Errorf("command %q: duplicate flag %q", c.Name, p.Flag)
			}
			flags[p.Flag] = true
			if !p.Optional && !p.Default.IsAbsent() {
				return fmt.Errorf("command %q: required flag %q cannot have a default", c.Name, p.Flag)
			}
		}
		switch p.Kind {
		case Enum:
			if len(p.Values) == 0 {
				return fmt.Errorf("command %q: enum parameter %q has no allowed values", c.Name, p.Name)
			}
		case Custom:
			if p.Coerce == nil {
				return fmt.Errorf("command %q: custom parameter %q has no coerce function", c.Name, p.Name)
			}
		}
		if !p.Default.IsAbsent() {
			if err := p.checkDefault(); err != nil {
				return fmt.Errorf("command %q: parameter %q: invalid default %s: %w", c.Name, p.Name, p.Default, err)
			}
		}
	}
	return nil
}

// defaultTypes is the value variant each kind coerces to. Custom is absent: its coerce function
// decides.
var defaultTypes = map[Kind]ValueType{
	Integer:       IntValue,
	Decimal:       FloatValue,
	StringLiteral: StringValue,
	Flag:          PresenceValue,
	CommandName:   EnumValueType,
	Enum:          EnumValueType,
	Date:          DateValueType,
}

// checkDefault holds the default to the same constraints a parsed token would meet.
func (p *Param) checkDefault() error {
	if want, ok := defaultTypes[p.Kind]; ok && p.Default.Type() != want {
		return fmt.Errorf("does not match kind %s", p.Kind)
	}
	if p.Kind == Enum {
		if s, _ := p.Default.Str(); !slices.Contains(p.Values, s) {
			return fmt.Errorf("must be one of %s", strings.Join(p.Values, ", "))
		}
	}
	if p.Check != nil {
		return p.Check(p.Default)
	}
	return nil
}

// Validate reports mistakes in the command's declaration, the same ones [Parser.Register]
// rejects, except for flag conflicts with other commands.
func (c *Command) Validate() error {
	return validateCommand(c)
}

func (p *Parser) formatUnknownCommandError(unknownCmd string) error {
	var known []string
	for name := range p.commands {
		known = append(known, name)
	}
	suggestions := suggest.FindSimilar(unknownCmd, known, p.suggestions)
	e := &Error{code: ErrUnknownCommand, Index: -1, Token: unknownCmd}
	if len(suggestions) > 0 {
		e.msg = fmt.Sprintf("unknown command %q. Did you mean one of these?\n\t%s",
			unknownCmd,
			strings.Join(suggestions, "\n\t"))
		return e
	}
	e.msg = fmt.Sprintf("unknown command %q", unknownCmd)
	return e
}
