package argcheck

import (
	"slices"

	"github.com/tidwall/btree"
)

// Registry holds the recognized command and flag names and the kind sequence registered for each
// of them.
//
// A Registry is not safe for concurrent mutation. Complete all Register, AddCommand and AddFlag
// calls before parsing from multiple goroutines; lookups alone are safe to share.
type Registry struct {
	schemas  *btree.Map[string, Schema]
	commands *btree.Map[string, struct{}]
	flags    *btree.Map[string, struct{}]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:  btree.NewMap[string, Schema](0),
		commands: btree.NewMap[string, struct{}](0),
		flags:    btree.NewMap[string, struct{}](0),
	}
}

// Register associates name with an ordered kind sequence, replacing any schema previously
// registered under the same name.
func (r *Registry) Register(name string, kinds ...Kind) {
	r.schemas.Set(name, slices.Clone(Schema(kinds)))
}

// AddCommand adds name to the set of recognized command names.
func (r *Registry) AddCommand(name string) {
	r.commands.Set(name, struct{}{})
}

// AddFlag adds name, including its leading dashes, to the set of recognized flags.
func (r *Registry) AddFlag(name string) {
	r.flags.Set(name, struct{}{})
}

// Schema returns a copy of the kind sequence registered for name.
func (r *Registry) Schema(name string) (Schema, bool) {
	s, ok := r.schemas.Get(name)
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}

// Unregister removes the schema registered under name.
func (r *Registry) Unregister(name string) {
	r.schemas.Delete(name)
}

// RemoveFlag removes name from the set of recognized flags.
func (r *Registry) RemoveFlag(name string) {
	r.flags.Delete(name)
}

func (r *Registry) IsCommand(name string) bool {
	_, ok := r.commands.Get(name)
	return ok
}

func (r *Registry) IsFlag(name string) bool {
	_, ok := r.flags.Get(name)
	return ok
}

// arity is the number of value tokens that follow a flag.
func (r *Registry) arity(flag string) int {
	s, _ := r.schemas.Get(flag)
	return len(s)
}

// Commands returns the recognized command names in sorted order.
func (r *Registry) Commands() []string {
	return keys(r.commands)
}

// Flags returns the recognized flag names in sorted order.
func (r *Registry) Flags() []string {
	return keys(r.flags)
}

func keys(m *btree.Map[string, struct{}]) []string {
	out := make([]string, 0, m.Len())
	m.Scan(func(key string, _ struct{}) bool {
		out = append(out, key)
		return true
	})
	return out
}
