package argcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidateRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{"add", "sub", "sqrt", "calc", "date"} {
		r.AddCommand(name)
	}
	r.AddFlag("--left")
	r.AddFlag("--right")
	r.AddFlag("--verbose")
	r.Register("--left", Decimal)
	r.Register("--right", Decimal)
	r.Register("--verbose")
	return r
}

func requireCode(t *testing.T, err error, code ErrorCode) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, code, e.Code(), "unexpected code for error: %v", err)
	return e
}

func TestValidate(t *testing.T) {
	t.Parallel()

	sub := Schema{Flag, Decimal, Flag, Decimal}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		require.NoError(t, r.Validate([]string{"--left", "1.5", "--right", "2"}, sub))
		require.NoError(t, r.Validate([]string{"1", "-2"}, Schema{Integer, Integer}))
		require.NoError(t, r.Validate([]string{"sqrt"}, Schema{CommandName}))
		require.NoError(t, r.Validate([]string{"anything"}, Schema{StringLiteral}))
		require.NoError(t, r.Validate([]string{"--verbose"}, Schema{Flag}))
	})
	t.Run("not a valid flag", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		err := r.Validate([]string{"--middle", "1.5"}, sub)
		e := requireCode(t, err, ErrStructuralMismatch)
		assert.Equal(t, 0, e.Index)
		assert.Equal(t, "--middle", e.Token)
		assert.Equal(t, "Argument at index 0 is not a valid flag\nExpected Arguments: [flag, double, flag, double]", err.Error())
	})
	t.Run("missing argument for flag", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		err := r.Validate([]string{"--left", "1.5", "--right"}, sub)
		e := requireCode(t, err, ErrStructuralMismatch)
		assert.Equal(t, 3, e.Index)
		assert.ErrorContains(t, err, "Missing argument for flag at index 3")
	})
	t.Run("not a double", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		err := r.Validate([]string{"--left", "abc", "--right", "2"}, sub)
		e := requireCode(t, err, ErrTypeCoercion)
		assert.Equal(t, 1, e.Index)
		assert.Equal(t, "Argument at index 1 is not a double\nExpected Arguments: [flag, double, flag, double]", err.Error())
	})
	t.Run("not an integer", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		err := r.Validate([]string{"1", "2.5"}, Schema{Integer, Integer})
		e := requireCode(t, err, ErrTypeCoercion)
		assert.Equal(t, 1, e.Index)
		assert.ErrorContains(t, err, "Argument at index 1 is not an integer")
		assert.ErrorContains(t, err, "Expected Arguments: [integer, integer]")
	})
	t.Run("not a valid command", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		err := r.Validate([]string{"mul"}, Schema{CommandName})
		requireCode(t, err, ErrDomainValidation)
		assert.ErrorContains(t, err, "Argument at index 0 is not a valid command")
	})
	t.Run("other kinds defer to coercion", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		requireCode(t, r.Validate([]string{"2024-02-30"}, Schema{Date}), ErrDomainValidation)
		requireCode(t, r.Validate([]string{"2024/02/03"}, Schema{Date}), ErrTypeCoercion)
		// A bare schema carries no allowed values, so any enum token passes.
		require.NoError(t, r.Validate([]string{"mul"}, Schema{Enum}))
	})
	t.Run("first failure wins", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		err := r.Validate([]string{"x", "y"}, Schema{Integer, Decimal})
		e := requireCode(t, err, ErrTypeCoercion)
		assert.Equal(t, 0, e.Index)
	})
	t.Run("short input is accepted as a prefix", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		// Only the tokens present are checked; exact arity is enforced by Parser.Parse.
		require.NoError(t, r.Validate([]string{"--right", "2.0"}, sub))
		require.NoError(t, r.Validate([]string{"1"}, Schema{Integer, Integer}))
		require.NoError(t, r.Validate(nil, Schema{Integer}))
	})
	t.Run("surplus tokens are not checked", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		require.NoError(t, r.Validate([]string{"1", "not-a-number"}, Schema{Integer}))
	})
	t.Run("no state carried between calls", func(t *testing.T) {
		t.Parallel()
		r := newValidateRegistry()
		require.Error(t, r.Validate([]string{"x"}, Schema{Integer}))
		require.NoError(t, r.Validate([]string{"1"}, Schema{Integer}))
	})
}
