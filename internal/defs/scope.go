package defs

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/declare"
)

// Var is one variable binding: the declare-graph group its type resolves
// to, and whether it may be the target of a VarStore. Function parameters
// are declared Const: true, enforcing spec.md's parameter-immutability
// rule; locals introduced by VarDefine are mutable.
type Var struct {
	Group declare.GroupIdx
	Const bool
}

// scope is one lexical block's variable bindings.
type scope struct {
	vars map[string]Var
}

// Scopes is a stack of lexical scopes, innermost last, walked
// innermost-first on lookup — shadowing an outer variable is always
// legal, matching a block-scoped imperative language.
type Scopes struct {
	stack []*scope
}

// NewScopes returns a scope stack with one (function-body) scope pushed.
func NewScopes() *Scopes {
	s := &Scopes{}
	s.Push()
	return s
}

// Push opens a new nested scope, e.g. entering a block or condition.
func (s *Scopes) Push() {
	s.stack = append(s.stack, &scope{vars: make(map[string]Var)})
}

// Pop closes the innermost scope.
func (s *Scopes) Pop() {
	s.stack = s.stack[:len(s.stack)-1]
}

// Declare binds name in the innermost scope, rejecting a redeclaration
// within that same scope (shadowing an outer scope's variable is fine).
func (s *Scopes) Declare(name string, v Var) error {
	top := s.stack[len(s.stack)-1]
	if _, exists := top.vars[name]; exists {
		return fmt.Errorf("variable %q already declared in this scope", name)
	}
	top.vars[name] = v
	return nil
}

// Lookup walks the scope stack innermost-first for name.
func (s *Scopes) Lookup(name string) (Var, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if v, ok := s.stack[i].vars[name]; ok {
			return v, true
		}
	}
	return Var{}, false
}

// CheckAssignable reports an error if name is undeclared or const,
// enforcing parameter immutability at VarStore sites.
func (s *Scopes) CheckAssignable(name string) error {
	v, ok := s.Lookup(name)
	if !ok {
		return fmt.Errorf("undeclared variable %q", name)
	}
	if v.Const {
		return fmt.Errorf("%q is immutable and cannot be assigned to", name)
	}
	return nil
}
