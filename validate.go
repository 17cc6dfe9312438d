package argcheck

// parsedArguments is the token sequence under validation plus the current error. A fresh value is
// created for every call and never shared.
type parsedArguments struct {
	reg    *Registry
	tokens []string
	// params is aligned with the schema being checked; entries may be nil.
	params []*Param
	// values holds the coerced value of every checked non-flag position.
	values []Value
	err    *Error
}

// Validate walks tokens against schema in lock-step and returns the first failure as an [*Error]
// whose message ends with the expected schema.
//
// Only the first min(len(tokens), len(schema)) positions are checked: a token sequence shorter
// than the schema is accepted as a valid prefix. Callers that need an exact argument count must
// check it separately, which is what [Parser.Parse] does before validating.
//
// Enum and custom kinds accept any token here because a bare schema carries no allowed value set
// or coerce function.
func (r *Registry) Validate(tokens []string, schema Schema) error {
	pa := &parsedArguments{reg: r, tokens: tokens}
	return pa.validateAgainst(schema, schema)
}

func (pa *parsedArguments) validateAgainst(schema, expected Schema) error {
	n := min(len(pa.tokens), len(schema))
	pa.values = make([]Value, n)
	for i := 0; i < n; i++ {
		switch kind := schema[i]; kind {
		case Flag:
			pa.checkFlag(i)
		default:
			pa.values[i], pa.err = coerce(pa.reg, pa.param(i), kind, i, pa.tokens[i])
		}
		if pa.err != nil {
			pa.err.Expected = expected
			return pa.err
		}
	}
	return nil
}

func (pa *parsedArguments) param(i int) *Param {
	if i < len(pa.params) {
		return pa.params[i]
	}
	return nil
}

// checkFlag verifies the token at index is a registered flag followed by enough tokens for the
// flag's own schema.
func (pa *parsedArguments) checkFlag(index int) {
	flag := pa.tokens[index]
	if _, pa.err = coerce(pa.reg, nil, Flag, index, flag); pa.err != nil {
		return
	}
	numArgs := pa.reg.arity(flag)
	index++
	if index+numArgs > len(pa.tokens) {
		pa.err = newError(ErrStructuralMismatch, index, flag, "Missing argument for flag at index %d", index)
	}
}
