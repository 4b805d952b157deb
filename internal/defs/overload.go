// Package defs is the definition registry consulted while lowering AST to
// MIR: the overload table (functions grouped by unmangled name) and the
// lexical scope stack (variables, with mutability tracking for parameter
// immutability). Grounded on pin1yin1-grammar's into_ast.rs symbol table
// and py-declare's defs.rs function-signature bookkeeping.
package defs

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/ir"
)

// FnSig is one overload's resolved signature.
type FnSig struct {
	Name    string
	Mangled string
	Params  []ir.Type
	Return  ir.Type
}

// Overloads groups every function signature by its unmangled (surface)
// name — the same name may be declared more than once with different
// parameter types, and the declare graph picks the right one per call
// site by building one branch per candidate (see internal/mir).
type Overloads struct {
	byName map[string][]FnSig
}

// NewOverloads returns an empty overload table.
func NewOverloads() *Overloads {
	return &Overloads{byName: make(map[string][]FnSig)}
}

// Register adds a signature, rejecting an exact mangled-name collision
// (the same name declared twice with identical parameter types).
func (o *Overloads) Register(sig FnSig) error {
	for _, existing := range o.byName[sig.Name] {
		if existing.Mangled == sig.Mangled {
			return fmt.Errorf("function %q redeclared with identical parameter types", sig.Name)
		}
	}
	o.byName[sig.Name] = append(o.byName[sig.Name], sig)
	return nil
}

// Candidates returns every overload registered under name, in
// declaration order.
func (o *Overloads) Candidates(name string) []FnSig {
	return o.byName[name]
}

// CandidatesByArity filters Candidates to those taking exactly n
// parameters — mir uses this to decide, at declare-graph build time,
// which overloads even have a branch; an arity mismatch never needs a
// runtime filter (see DESIGN.md's note on the declare package).
func (o *Overloads) CandidatesByArity(name string, n int) []FnSig {
	var out []FnSig
	for _, sig := range o.Candidates(name) {
		if len(sig.Params) == n {
			out = append(out, sig)
		}
	}
	return out
}
