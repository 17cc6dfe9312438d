package hclschema

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfridman/argcheck"
)

var cmpOpts = []cmp.Option{
	cmp.Comparer(func(a, b argcheck.Value) bool { return a == b }),
	cmpopts.IgnoreFields(argcheck.Param{}, "Check", "Coerce"),
	cmpopts.IgnoreFields(argcheck.Command{}, "Exec"),
}

func TestLoadFiles(t *testing.T) {
	t.Parallel()

	cmds, err := LoadFiles(context.Background(), filepath.Join("testdata", "commands.hcl"))
	require.NoError(t, err)

	want := []*argcheck.Command{
		{
			Name:      "greet",
			ShortHelp: "Greets someone a number of times.",
			Params: []argcheck.Param{
				{Name: "name", Kind: argcheck.StringLiteral, Help: "who to greet"},
				{Name: "times", Kind: argcheck.Integer, Flag: "--times", Optional: true, Default: argcheck.Int(1)},
				{Name: "loud", Kind: argcheck.Flag, Flag: "--loud", Optional: true},
			},
		},
		{
			Name:  "schedule",
			Usage: "schedule <yyyy-mm-dd> [--priority low|high] [--budget <double>]",
			Params: []argcheck.Param{
				{Name: "on", Kind: argcheck.Date},
				{
					Name:     "priority",
					Kind:     argcheck.Enum,
					Flag:     "--priority",
					Optional: true,
					Values:   []string{"low", "high"},
					Default:  argcheck.EnumValue("low"),
				},
				{Name: "budget", Kind: argcheck.Decimal, Flag: "--budget", Optional: true},
			},
		},
	}
	if diff := cmp.Diff(want, cmds, cmpOpts...); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, cmds[1].Params[2].Check, "non_negative installs a check")
}

func TestLoadedCommandsParse(t *testing.T) {
	t.Parallel()

	cmds, err := LoadFiles(context.Background(), filepath.Join("testdata", "commands.hcl"))
	require.NoError(t, err)
	p := argcheck.NewDefault()
	require.NoError(t, p.Register(cmds...))

	args, err := p.Parse(`greet "Grace Hopper" --loud`)
	require.NoError(t, err)
	assert.Equal(t, argcheck.Arguments{
		"name":  argcheck.String("Grace Hopper"),
		"times": argcheck.Int(1),
		"loud":  argcheck.Present(),
	}, args)

	args, err = p.Parse("schedule 2024-02-29 --budget 12.5")
	require.NoError(t, err)
	assert.Equal(t, argcheck.Arguments{
		"on":       argcheck.DateValue(argcheck.CalendarDate{Year: 2024, Month: time.February, Day: 29}),
		"priority": argcheck.EnumValue("low"),
		"budget":   argcheck.Float(12.5),
	}, args)

	_, err = p.Parse("schedule 2024-02-29 --priority urgent")
	assert.Equal(t, argcheck.ErrDomainValidation, argcheck.CodeOf(err))

	_, err = p.Parse("schedule 2024-02-29 --budget -1")
	assert.Equal(t, argcheck.ErrDomainValidation, argcheck.CodeOf(err))

	// Builtins still work next to file-defined commands.
	_, err = p.Parse("add 1 2")
	require.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `command "x" {`,
			wantErr: "failed to parse HCL file test.hcl",
		},
		{
			name:    "unknown attribute",
			src:     "command \"x\" {\n  colour = \"red\"\n}\n",
			wantErr: "failed to decode HCL file test.hcl",
		},
		{
			name:    "missing kind",
			src:     "command \"x\" {\n  param \"a\" {}\n}\n",
			wantErr: "failed to decode HCL file test.hcl",
		},
		{
			name:    "unknown kind",
			src:     "command \"x\" {\n  param \"a\" {\n    kind = \"timestamp\"\n  }\n}\n",
			wantErr: `test.hcl: command "x": param "a": unknown argument kind "timestamp"`,
		},
		{
			name:    "default of wrong type",
			src:     "command \"x\" {\n  param \"a\" {\n    kind = \"integer\"\n    flag = \"--a\"\n    optional = true\n    default = \"one\"\n  }\n}\n",
			wantErr: `param "a": invalid default`,
		},
		{
			name:    "fractional integer default",
			src:     "command \"x\" {\n  param \"a\" {\n    kind = \"integer\"\n    flag = \"--a\"\n    optional = true\n    default = 1.5\n  }\n}\n",
			wantErr: `param "a": invalid default`,
		},
		{
			name:    "invalid date default",
			src:     "command \"x\" {\n  param \"a\" {\n    kind = \"date\"\n    flag = \"--a\"\n    optional = true\n    default = \"2023-02-29\"\n  }\n}\n",
			wantErr: `invalid date "2023-02-29"`,
		},
		{
			name:    "enum default outside values",
			src:     "command \"s\" {\n  param \"p\" {\n    kind = \"enum\"\n    flag = \"--p\"\n    optional = true\n    values = [\"low\", \"high\"]\n    default = \"medium\"\n  }\n}\n",
			wantErr: `test.hcl: command "s": parameter "p": invalid default medium: must be one of low, high`,
		},
		{
			name:    "negative default with non_negative",
			src:     "command \"s\" {\n  param \"b\" {\n    kind = \"integer\"\n    flag = \"--b\"\n    optional = true\n    non_negative = true\n    default = -5\n  }\n}\n",
			wantErr: `parameter "b": invalid default -5: must be non-negative`,
		},
		{
			name:    "default on required flag",
			src:     "command \"s\" {\n  param \"b\" {\n    kind = \"integer\"\n    flag = \"--b\"\n    default = 1\n  }\n}\n",
			wantErr: `required flag "--b" cannot have a default`,
		},
		{
			name:    "custom kind",
			src:     "command \"s\" {\n  param \"c\" {\n    kind = \"custom\"\n  }\n}\n",
			wantErr: "kind custom needs a coerce function and cannot be declared in a schema file",
		},
		{
			name:    "non_negative on string",
			src:     "command \"x\" {\n  param \"a\" {\n    kind = \"string\"\n    non_negative = true\n  }\n}\n",
			wantErr: "non_negative requires a numeric kind, got string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	src := `
command "defaults" {
  param "d" {
    kind     = "decimal"
    flag     = "--d"
    optional = true
    default  = 2
  }
  param "b" {
    kind     = "flag"
    flag     = "--b"
    optional = true
    default  = true
  }
  param "on" {
    kind     = "date"
    flag     = "--on"
    optional = true
    default  = "2000-01-01"
  }
  param "s" {
    kind     = "string"
    flag     = "--s"
    optional = true
    default  = "hi"
  }
}
`
	cmds, err := Parse([]byte(src), "defaults.hcl")
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	params := cmds[0].Params
	assert.Equal(t, argcheck.Float(2), params[0].Default)
	assert.Equal(t, argcheck.Present(), params[1].Default)
	assert.Equal(t, argcheck.DateValue(argcheck.CalendarDate{Year: 2000, Month: time.January, Day: 1}), params[2].Default)
	assert.Equal(t, argcheck.String("hi"), params[3].Default)
}

func TestLoadFilesMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFiles(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse HCL file")
}

func TestLoadFilesLastWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.hcl")
	second := filepath.Join(dir, "b.hcl")
	require.NoError(t, os.WriteFile(first, []byte("command \"add\" {\n  param \"x\" {\n    kind = \"string\"\n  }\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("command \"add\" {\n  param \"y\" {\n    kind = \"date\"\n  }\n}\n"), 0o644))

	cmds, err := LoadFiles(context.Background(), first, second)
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	p := argcheck.NewDefault()
	require.NoError(t, p.Register(cmds...))
	args, err := p.Parse("add 2024-01-01")
	require.NoError(t, err)
	_, ok := argcheck.Get[argcheck.CalendarDate](args, "y")
	assert.True(t, ok)
}
