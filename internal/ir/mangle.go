package ir

import "strings"

// Mangle produces the unique linkage name for one overload of a function:
// the declared name followed by every parameter type's string form,
// dot-joined. Two functions sharing a name but differing in parameter
// types (overloads, resolved by the declare graph per call site) must
// never collide once lowered to IR, and a parameterless function's
// mangled name is just its bare name. Grounded on py-ir's mangling
// scheme (name + param types), simplified to a flat dot-joined string
// since this language has no generic parameters to also fold in.
func Mangle(name string, params []Type) string {
	if len(params) == 0 {
		return name
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, name)
	for _, p := range params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ".")
}
