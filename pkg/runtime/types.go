package runtime

import "fmt"

// ObjectType is the universal type name; it accepts every value.
const ObjectType = "object"

// TypeValue names a type in the type namespace.
type TypeValue struct {
	Header
	Name string
}

func NewType(name string) *TypeValue {
	return &TypeValue{Header: header(KindType), Name: name}
}

func (v *TypeValue) Kind() Kind     { return KindType }
func (v *TypeValue) Copy() Value    { c := *v; c.Immutable = false; return &c }
func (v *TypeValue) String() string { return fmt.Sprintf("<type \"%s\">", v.Name) }

// Accepts reports whether val satisfies the type.
func (v *TypeValue) Accepts(val Value) bool {
	return TypeAccepts(v.Name, val)
}

// TypeAccepts reports whether a value of val's runtime type may be stored
// under the declared type name. `function` accepts runtime "method" values.
func TypeAccepts(name string, val Value) bool {
	switch name {
	case ObjectType:
		return true
	case "function":
		k := val.Kind()
		return k == KindFunction || k == KindBuiltin
	default:
		return name == TypeName(val)
	}
}

// BuiltinTypes lists the types registered in every global scope.
var BuiltinTypes = []string{"int", "float", "string", "bool", "function", ObjectType, "list"}

// RegisterBuiltinTypes installs BuiltinTypes into table.
func RegisterBuiltinTypes(table *SymbolTable) {
	for _, name := range BuiltinTypes {
		table.SetType(name, NewType(name))
	}
}
