// Package declare implements the "declare graph": the name-resolution and
// type-constraint engine that elaborates an untyped MIR into the typed IR.
// Every expression site is a Group; every candidate concrete type (or,
// for a call, candidate overload) a Branch; branches are removed as
// dependencies eliminate them, and a graph is solved once every group
// reduces to exactly one alive branch. Grounded on
// _examples/original_source/py-declare/src/{graph.rs,group.rs,branch.rs,
// error.rs,filter.rs} — the newest snapshot in the retrieval pack,
// superseding the older Bench/DeclareMap design in map.rs.
package declare

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/ir"
)

// ErrorKind enumerates the declare graph's error taxonomy, grounded on
// py-declare's DeclareError enum.
type ErrorKind int

const (
	// Unexpect: DeclareType was asked to pin a group to a type no branch
	// offers.
	Unexpect ErrorKind = iota
	// NonBenchSelected: a group solved with zero alive branches.
	NonBenchSelected
	// MultSelected: a group solved with more than one alive branch
	// (genuine ambiguity).
	MultSelected
	// ConflictSelected: MergeGroups found no common type between two
	// groups.
	ConflictSelected
	// NeverUsed: a branch of a dependency group was removed because no
	// alive branch of a group depending on it still selects its type.
	NeverUsed
	// TypeUnmatch: a branch's required dependency type disappeared.
	TypeUnmatch
	// GroupSolved: informational reason attached when a branch is removed
	// because DeclareType pinned its group to a different concrete type.
	GroupSolved
	// UniqueDeleted: the one surviving candidate of a group was itself
	// removed by cascade, leaving the group with no way to be solved.
	UniqueDeleted
)

func (k ErrorKind) String() string {
	switch k {
	case Unexpect:
		return "unexpected type"
	case NonBenchSelected:
		return "no candidate remains"
	case MultSelected:
		return "ambiguous: multiple candidates remain"
	case ConflictSelected:
		return "no common type between merged groups"
	case NeverUsed:
		return "no dependent branch selects this candidate"
	case TypeUnmatch:
		return "required type no longer available"
	case GroupSolved:
		return "superseded by an explicit type declaration"
	case UniqueDeleted:
		return "sole remaining candidate was removed"
	default:
		return "unknown declare error"
	}
}

// Error is one declare-graph failure. Errors chain through Previous to
// form a DAG of removal explanations: a branch removed because its
// dependency was removed carries the dependency's own Error as Previous,
// so a diagnostic can render the whole causal chain.
type Error struct {
	Kind     ErrorKind
	Group    GroupIdx
	Message  string
	Previous *Error
}

// NewError constructs a declare error with no cause chain.
func NewError(kind ErrorKind, group GroupIdx, format string, args ...any) *Error {
	return &Error{Kind: kind, Group: group, Message: fmt.Sprintf(format, args...)}
}

// Because chains e as the cause of a new error of kind in group.
func (e *Error) Because(kind ErrorKind, group GroupIdx, format string, args ...any) *Error {
	return &Error{Kind: kind, Group: group, Message: fmt.Sprintf(format, args...), Previous: e}
}

// Error implements the error interface, rendering the full cause chain.
func (e *Error) Error() string {
	s := fmt.Sprintf("group %d: %s (%s)", e.Group, e.Message, e.Kind)
	if e.Previous != nil {
		s += "\n  caused by: " + e.Previous.Error()
	}
	return s
}

// TypeMismatch is a convenience constructor for the common "literal/value
// cannot be this type" case.
func TypeMismatch(group GroupIdx, want ir.Type) *Error {
	return NewError(TypeUnmatch, group, "type %s is no longer a valid candidate", want.String())
}
