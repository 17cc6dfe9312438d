package argcheck

// Builtin returns fresh copies of the demo commands:
//
//	add  <left> <right>                      two integers
//	sub  [--left <double>] --right <double>  named decimals, left optional
//	sqrt <number>                            one non-negative integer
//	calc {add|sub|sqrt}                      one enumerated subcommand
//	date <yyyy-mm-dd>                        one calendar date
func Builtin() []*Command {
	return []*Command{
		{
			Name:      "add",
			ShortHelp: "Takes two positional integers, left and right.",
			Params: []Param{
				{Name: "left", Kind: Integer},
				{Name: "right", Kind: Integer},
			},
		},
		{
			Name:      "sub",
			ShortHelp: "Takes two named decimals; --left is optional and --right is required.",
			Params: []Param{
				{Name: "left", Kind: Decimal, Flag: "--left", Optional: true},
				{Name: "right", Kind: Decimal, Flag: "--right"},
			},
		},
		{
			Name:      "sqrt",
			ShortHelp: "Takes one positional non-negative integer.",
			Params: []Param{
				{Name: "number", Kind: Integer, Check: NonNegative},
			},
		},
		{
			Name:      "calc",
			ShortHelp: "Takes one positional subcommand: add, sub or sqrt.",
			Params: []Param{
				{Name: "subcommand", Kind: Enum, Values: []string{"add", "sub", "sqrt"}},
			},
		},
		{
			Name:      "date",
			ShortHelp: "Takes one positional calendar date written as yyyy-mm-dd.",
			Params: []Param{
				{Name: "date", Kind: Date},
			},
		},
	}
}

// NewDefault returns a parser with its own registry and the [Builtin] commands registered.
func NewDefault(opts ...Option) *Parser {
	p := New(NewRegistry(), opts...)
	if err := p.Register(Builtin()...); err != nil {
		panic("argcheck: invalid builtin commands: " + err.Error())
	}
	return p
}
