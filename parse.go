package argcheck

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/mfridman/argcheck/pkg/suggest"
)

// Parser dispatches command lines to the argument shape registered for their leading token.
//
// Once registration is complete a Parser only reads its state, so Parse may be called from
// multiple goroutines.
type Parser struct {
	reg         *Registry
	commands    map[string]*Command
	logger      *slog.Logger
	suggestions int
}

// Option configures a [Parser].
type Option func(*Parser)

// WithLogger sets the logger used for debug output. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSuggestions sets how many similar command names are offered when a command is unknown. Zero
// disables suggestions. The default is 3.
func WithSuggestions(n int) Option {
	return func(p *Parser) {
		p.suggestions = n
	}
}

// New returns a parser that registers its commands into reg. A nil reg gets a fresh registry.
func New(reg *Registry, opts ...Option) *Parser {
	if reg == nil {
		reg = NewRegistry()
	}
	p := &Parser{
		reg:         reg,
		commands:    make(map[string]*Command),
		logger:      slog.New(slog.DiscardHandler),
		suggestions: 3,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the registry the parser validates against.
func (p *Parser) Registry() *Registry {
	return p.reg
}

// Register validates each command and records its schema, its flags and its name in the
// registry. Registering a name again replaces the earlier command, including its flags. A flag
// shared by several commands must take the same value kind everywhere.
//
// Registration is all or nothing: if any command is rejected, neither the parser nor the registry
// changes.
func (p *Parser) Register(cmds ...*Command) error {
	next := maps.Clone(p.commands)
	for _, c := range cmds {
		if err := validateCommand(c); err != nil {
			return fmt.Errorf("failed to register: %w", err)
		}
		delete(next, c.Name)
		if err := p.checkFlags(next, c); err != nil {
			return fmt.Errorf("failed to register: %w", err)
		}
		next[c.Name] = c
	}

	// Flags of replaced commands that nothing uses anymore.
	var stale []string
	for _, c := range cmds {
		if old, ok := p.commands[c.Name]; ok {
			for _, flag := range old.flags() {
				if !usesFlag(next, flag) {
					stale = append(stale, flag)
				}
			}
		}
	}
	for _, flag := range stale {
		p.reg.RemoveFlag(flag)
		p.reg.Unregister(flag)
	}
	for _, c := range cmds {
		for _, param := range c.Params {
			if param.Flag != "" {
				p.reg.AddFlag(param.Flag)
				p.reg.Register(param.Flag, param.flagSchema()...)
			}
		}
		p.reg.Register(c.Name, c.schema()...)
		p.reg.AddCommand(c.Name)
		p.commands[c.Name] = c
		p.logger.Debug("registered command", "command", c.Name, "schema", c.schema().String())
	}
	return nil
}

// checkFlags reports a flag of c whose schema differs from the one it has in others. Flags no
// command owns are compared against whatever was registered directly in the registry.
func (p *Parser) checkFlags(others map[string]*Command, c *Command) error {
	for _, param := range c.Params {
		if param.Flag == "" {
			continue
		}
		want := param.flagSchema()
		owned := false
		for _, other := range others {
			for _, op := range other.Params {
				if op.Flag != param.Flag {
					continue
				}
				owned = true
				if existing := op.flagSchema(); !slices.Equal(existing, want) {
					return fmt.Errorf("command %q: flag %q already registered with schema %s by command %q",
						c.Name, param.Flag, existing, other.Name)
				}
			}
		}
		if owned || usesFlag(p.commands, param.Flag) {
			continue
		}
		if existing, ok := p.reg.Schema(param.Flag); ok && !slices.Equal(existing, want) {
			return fmt.Errorf("command %q: flag %q already registered with schema %s",
				c.Name, param.Flag, existing)
		}
	}
	return nil
}

func usesFlag(commands map[string]*Command, flag string) bool {
	for _, c := range commands {
		if slices.Contains(c.flags(), flag) {
			return true
		}
	}
	return false
}

// Lookup returns the command registered under name.
func (p *Parser) Lookup(name string) (*Command, bool) {
	c, ok := p.commands[name]
	return c, ok
}

// Commands returns the registered commands sorted by name.
func (p *Parser) Commands() []*Command {
	return slices.SortedFunc(maps.Values(p.commands), func(a, b *Command) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// Parse tokenizes line and parses it with [Parser.ParseArgs].
func (p *Parser) Parse(line string) (Arguments, error) {
	name, args := Tokenize(line)
	p.logger.Debug("tokenized command line", "command", name, "args", args)
	return p.ParseArgs(name, args)
}

// ParseArgs parses already tokenized input. It returns the name-to-value mapping for the
// command's parameters, or an [*Error]. No partial result is ever returned.
//
// The input is checked structurally first (argument count and flag order), then each token is
// validated and coerced against its kind exactly once, and finally domain checks are applied.
func (p *Parser) ParseArgs(name string, args []string) (Arguments, error) {
	cmd, ok := p.commands[name]
	if !ok {
		err := p.formatUnknownCommandError(name)
		p.logger.Debug("unknown command", "command", name)
		return nil, err
	}
	bindings, matched, err := cmd.match(args)
	if err != nil {
		p.logger.Debug("structural mismatch", "command", name, "error", err)
		return nil, err
	}

	expected, _ := p.reg.Schema(cmd.Name)
	pa := &parsedArguments{
		reg:    p.reg,
		tokens: args,
		params: alignParams(bindings, len(matched)),
	}
	if err := pa.validateAgainst(matched, expected); err != nil {
		p.logger.Debug("validation failed", "command", name, "error", err)
		return nil, err
	}

	result := make(Arguments, len(bindings))
	for _, b := range bindings {
		v, err := b.value(pa.values, args)
		if err != nil {
			p.logger.Debug("domain check failed", "command", name, "param", b.param.Name, "error", err)
			return nil, err
		}
		result[b.param.Name] = v
	}
	p.logger.Debug("parsed command", "command", name, "args", len(result))
	return result, nil
}

// binding ties a parameter to the position of its value token. flagAt is the index of the flag
// token for named parameters; both are -1 when an optional flag was omitted.
type binding struct {
	param   *Param
	flagAt  int
	valueAt int
}

// match checks the argument count and flag pattern of args against the command's parameters.
// It returns one binding per parameter and the kind sequence of the tokens actually present.
func (c *Command) match(args []string) ([]binding, Schema, error) {
	var (
		bindings = make([]binding, 0, len(c.Params))
		matched  Schema
		i        int
	)
	for idx := range c.Params {
		param := &c.Params[idx]
		if param.Flag == "" {
			if i >= len(args) {
				return nil, nil, c.structuralError(i, "", "missing argument %q", param.Name)
			}
			bindings = append(bindings, binding{param: param, flagAt: -1, valueAt: i})
			matched = append(matched, param.Kind)
			i++
			continue
		}
		if i >= len(args) || args[i] != param.Flag {
			if param.Optional {
				bindings = append(bindings, binding{param: param, flagAt: -1, valueAt: -1})
				continue
			}
			return nil, nil, c.structuralError(i, "", "missing required flag %s", param.Flag)
		}
		n := param.arity()
		if i+1+n > len(args) {
			return nil, nil, c.structuralError(i+1, param.Flag, "missing argument for flag %s at index %d", param.Flag, i+1)
		}
		b := binding{param: param, flagAt: i, valueAt: -1}
		matched = append(matched, Flag)
		if n > 0 {
			b.valueAt = i + 1
			matched = append(matched, param.Kind)
		}
		bindings = append(bindings, b)
		i += 1 + n
	}
	if i < len(args) {
		if strings.HasPrefix(args[i], "--") {
			if similar := suggest.FindSimilar(args[i], c.flags(), 1); len(similar) > 0 {
				return nil, nil, c.structuralError(i, args[i], "unexpected argument %q at index %d (did you mean %s?)",
					args[i], i, similar[0])
			}
		}
		return nil, nil, c.structuralError(i, args[i], "unexpected argument %q at index %d", args[i], i)
	}
	return bindings, matched, nil
}

func (c *Command) structuralError(index int, token, format string, args ...any) *Error {
	e := newError(ErrStructuralMismatch, index, token, format, args...)
	e.msg = fmt.Sprintf("invalid command structure for %q: %s\nUsage: %s", c.Name, e.msg, Usage(c))
	return e
}

// alignParams maps each token position of a matched command line to the parameter that owns it.
func alignParams(bindings []binding, n int) []*Param {
	params := make([]*Param, n)
	for _, b := range bindings {
		if b.flagAt >= 0 && b.flagAt < n {
			params[b.flagAt] = b.param
		}
		if b.valueAt >= 0 && b.valueAt < n {
			params[b.valueAt] = b.param
		}
	}
	return params
}

// value returns the bound value, taken from the values coerced during validation, and applies
// the parameter's domain check.
func (b binding) value(values []Value, args []string) (Value, error) {
	param := b.param
	switch {
	case b.flagAt < 0 && b.valueAt < 0:
		return param.Default, nil
	case b.valueAt < 0:
		return Present(), nil
	}
	v, token := values[b.valueAt], args[b.valueAt]
	if param.Check != nil {
		if err := param.Check(v); err != nil {
			e := newError(ErrDomainValidation, b.valueAt, token, "Argument at index %d (%s): %v, got %s",
				b.valueAt, param.Name, err, token)
			e.err = err
			return Value{}, e
		}
	}
	return v, nil
}
