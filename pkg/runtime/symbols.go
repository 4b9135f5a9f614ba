package runtime

import "sort"

// SymbolTable holds the bindings of one scope. Lookups walk outward through
// parent; writes always land in the receiving table.
type SymbolTable struct {
	mutable   map[string]Value
	immutable map[string]Value
	functions map[string]Value
	types     map[string]*TypeValue
	parent    *SymbolTable
}

// NewSymbolTable creates a table, optionally nested under parent.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		mutable:   make(map[string]Value),
		immutable: make(map[string]Value),
		functions: make(map[string]Value),
		types:     make(map[string]*TypeValue),
		parent:    parent,
	}
}

// Parent exposes the enclosing table (nil when global).
func (s *SymbolTable) Parent() *SymbolTable {
	return s.parent
}

// Extend creates a child scope.
func (s *SymbolTable) Extend() *SymbolTable {
	return NewSymbolTable(s)
}

// Get resolves name through mutable, immutable, then function bindings,
// searching outward through the scope chain.
func (s *SymbolTable) Get(name string) (Value, bool) {
	for t := s; t != nil; t = t.parent {
		if v, ok := t.lookupLocal(name); ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal resolves name in this scope only.
func (s *SymbolTable) GetLocal(name string) (Value, bool) {
	return s.lookupLocal(name)
}

func (s *SymbolTable) lookupLocal(name string) (Value, bool) {
	if v, ok := s.mutable[name]; ok {
		return v, true
	}
	if v, ok := s.immutable[name]; ok {
		return v, true
	}
	if v, ok := s.functions[name]; ok {
		return v, true
	}
	return nil, false
}

// Set binds value in this scope. Immutable values go to the write-once
// namespace; a second write there is ignored.
func (s *SymbolTable) Set(name string, value Value) {
	if value.Base().Immutable {
		if _, exists := s.immutable[name]; exists {
			return
		}
		s.immutable[name] = value
		return
	}
	s.mutable[name] = value
}

// SetFunction binds fn in the function namespace of this scope.
func (s *SymbolTable) SetFunction(name string, fn Value) {
	s.functions[name] = fn
}

// SetType registers a type name in this scope.
func (s *SymbolTable) SetType(name string, t *TypeValue) {
	s.types[name] = t
}

// Type resolves a type name through the scope chain.
func (s *SymbolTable) Type(name string) (*TypeValue, bool) {
	for t := s; t != nil; t = t.parent {
		if v, ok := t.types[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns every value and function name bound in this scope, sorted.
func (s *SymbolTable) Keys() []string {
	seen := make(map[string]struct{}, len(s.mutable)+len(s.immutable)+len(s.functions))
	for _, m := range []map[string]Value{s.mutable, s.immutable, s.functions} {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
