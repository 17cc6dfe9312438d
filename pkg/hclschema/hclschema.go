// Package hclschema loads command argument shapes from HCL files.
//
// A schema file declares one block per command. Parameters are listed in the order they must
// appear on the command line:
//
//	command "greet" {
//	  short_help = "Greets someone."
//
//	  param "name" {
//	    kind = "string"
//	  }
//
//	  param "times" {
//	    kind     = "integer"
//	    flag     = "--times"
//	    optional = true
//	    default  = 1
//	  }
//	}
//
// Supported kinds are the tags understood by [argcheck.ParseKind] except custom, which needs Go
// code. Commands are validated as they are decoded, including their defaults.
package hclschema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/mfridman/argcheck"
	"github.com/mfridman/argcheck/internal/ctxlog"
)

type schemaFile struct {
	Commands []*commandBlock `hcl:"command,block"`
}

type commandBlock struct {
	Name      string        `hcl:"name,label"`
	Usage     string        `hcl:"usage,optional"`
	ShortHelp string        `hcl:"short_help,optional"`
	Params    []*paramBlock `hcl:"param,block"`
}

type paramBlock struct {
	Name        string     `hcl:"name,label"`
	Kind        string     `hcl:"kind"`
	Flag        string     `hcl:"flag,optional"`
	Optional    bool       `hcl:"optional,optional"`
	Default     *cty.Value `hcl:"default,optional"`
	Values      []string   `hcl:"values,optional"`
	NonNegative bool       `hcl:"non_negative,optional"`
	Help        string     `hcl:"help,optional"`
}

// Parse decodes commands from HCL source. The filename is only used in diagnostics.
func Parse(src []byte, filename string) ([]*argcheck.Command, error) {
	return decode(hclparse.NewParser(), src, filename)
}

// LoadFiles parses every file in order and returns their commands concatenated. A command
// declared in several files appears once per declaration; registering them in order lets the
// last one win.
func LoadFiles(ctx context.Context, paths ...string) ([]*argcheck.Command, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	var commands []*argcheck.Command
	for _, path := range paths {
		logger.Debug("Decoding schema file.", "path", path)
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		cmds, err := decodeBody(file.Body, path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Successfully decoded schema file.", "path", path, "commands_found", len(cmds))
		commands = append(commands, cmds...)
	}
	return commands, nil
}

func decode(parser *hclparse.Parser, src []byte, filename string) ([]*argcheck.Command, error) {
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decodeBody(file.Body, filename)
}

func decodeBody(body hcl.Body, filename string) ([]*argcheck.Command, error) {
	var parsed schemaFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	commands := make([]*argcheck.Command, 0, len(parsed.Commands))
	for _, block := range parsed.Commands {
		cmd, err := block.command()
		if err != nil {
			return nil, fmt.Errorf("%s: command %q: %w", filename, block.Name, err)
		}
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func (b *commandBlock) command() (*argcheck.Command, error) {
	cmd := &argcheck.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		ShortHelp: b.ShortHelp,
		Params:    make([]argcheck.Param, 0, len(b.Params)),
	}
	for _, pb := range b.Params {
		param, err := pb.param()
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", pb.Name, err)
		}
		cmd.Params = append(cmd.Params, param)
	}
	return cmd, nil
}

func (b *paramBlock) param() (argcheck.Param, error) {
	kind, err := argcheck.ParseKind(b.Kind)
	if err != nil {
		return argcheck.Param{}, err
	}
	if kind == argcheck.Custom {
		return argcheck.Param{}, errors.New("kind custom needs a coerce function and cannot be declared in a schema file")
	}
	p := argcheck.Param{
		Name:     b.Name,
		Kind:     kind,
		Flag:     b.Flag,
		Optional: b.Optional,
		Values:   b.Values,
		Help:     b.Help,
	}
	if b.NonNegative {
		if kind != argcheck.Integer && kind != argcheck.Decimal {
			return argcheck.Param{}, fmt.Errorf("non_negative requires a numeric kind, got %s", kind)
		}
		p.Check = argcheck.NonNegative
	}
	if b.Default != nil && !b.Default.IsNull() {
		v, err := convertDefault(kind, *b.Default)
		if err != nil {
			return argcheck.Param{}, fmt.Errorf("invalid default: %w", err)
		}
		p.Default = v
	}
	return p, nil
}

// convertDefault turns an HCL literal into a value of the parameter's kind.
func convertDefault(kind argcheck.Kind, v cty.Value) (argcheck.Value, error) {
	switch kind {
	case argcheck.Integer:
		var n int64
		if err := gocty.FromCtyValue(v, &n); err != nil {
			return argcheck.Value{}, err
		}
		return argcheck.Int(n), nil
	case argcheck.Decimal:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return argcheck.Value{}, err
		}
		return argcheck.Float(f), nil
	case argcheck.Flag:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return argcheck.Value{}, err
		}
		if b {
			return argcheck.Present(), nil
		}
		return argcheck.Absent(), nil
	case argcheck.StringLiteral, argcheck.Enum, argcheck.CommandName, argcheck.Date:
		var s string
		if err := gocty.FromCtyValue(v, &s); err != nil {
			return argcheck.Value{}, err
		}
		switch kind {
		case argcheck.StringLiteral:
			return argcheck.String(s), nil
		case argcheck.Date:
			d, err := argcheck.ParseDate(s)
			if err != nil {
				return argcheck.Value{}, err
			}
			return argcheck.DateValue(d), nil
		default:
			return argcheck.EnumValue(s), nil
		}
	case argcheck.Custom:
	}
	return argcheck.Value{}, fmt.Errorf("kind %s cannot have a default", kind)
}
