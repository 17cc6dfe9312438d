package argcheck

import (
	"context"
	"io"
	"os"
)

// RunOptions specifies options for running a command.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively).
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Run parses line and executes the selected command. See [Parser.RunArgs].
func (p *Parser) Run(ctx context.Context, line string, options *RunOptions) error {
	name, args := Tokenize(line)
	return p.RunArgs(ctx, name, args, options)
}

// RunArgs parses the tokenized input and hands the result to the command's Exec function. Parse
// errors are returned unchanged; a command without Exec yields a [*NoExecError].
//
// The options parameter may be nil, in which case default values are used. See [RunOptions] for
// more details.
func (p *Parser) RunArgs(ctx context.Context, name string, args []string, options *RunOptions) error {
	parsed, err := p.ParseArgs(name, args)
	if err != nil {
		return err
	}
	cmd := p.commands[name]
	if cmd.Exec == nil {
		return &NoExecError{Command: cmd}
	}
	options = checkAndSetRunOptions(options)
	s := &State{
		Command: cmd,
		Args:    parsed,
		Stdin:   options.Stdin,
		Stdout:  options.Stdout,
		Stderr:  options.Stderr,
		Logger:  p.logger,
	}
	return cmd.Exec(ctx, s)
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}
