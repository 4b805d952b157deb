package declare

import "github.com/pin1yin1/pin1c/internal/ir"

// Requirements building a branch's dependency list read naturally at the
// call site (NewBranchWith(t, payload, RequireType(arg, want), ...)), but
// these helpers cover the two shapes mir/ actually needs: a single
// dependency pinned to one type, and an overload branch that must agree
// with every one of its argument groups simultaneously. Grounded on
// py-declare's filter.rs, whose NthParamTy and Merge filters collapse
// to exactly this here since no other filter shape appears in the
// language.

// RequireType builds a single-dependency requirement.
func RequireType(group GroupIdx, want ir.Type) Requirement {
	return Requirement{Group: group, Want: want}
}

// RequireAll builds one requirement per (group, type) pair, in order —
// used when a call overload branch must match every argument group's
// corresponding parameter type at once.
func RequireAll(groups []GroupIdx, types []ir.Type) []Requirement {
	reqs := make([]Requirement, len(groups))
	for i := range groups {
		reqs[i] = Requirement{Group: groups[i], Want: types[i]}
	}
	return reqs
}
