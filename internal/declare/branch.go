package declare

import "github.com/pin1yin1/pin1c/internal/ir"

// GroupIdx addresses a Group within a DeclareGraph.
type GroupIdx int

// BranchIdx addresses a Branch within its owning Group.
type BranchIdx int

// Requirement pins one of a branch's dependency groups to a concrete type:
// the branch only remains viable while Group still has an alive branch
// whose type equals Want. This is the one filter shape the whole
// language needs (overload-argument matching, decorator propagation),
// grounded on py-declare's NthParamTy filter but collapsed from a trait
// object into a plain struct since no other filter shape ever appears in
// the corpus.
type Requirement struct {
	Group GroupIdx
	Want  ir.Type
}

// Branch is one candidate resolution of a Group: a concrete type, plus
// whatever Requirements must hold against sibling groups for this
// candidate to remain viable. The groups this branch reads are derived
// from Requirements (see deps) for the graph's reverse-edge bookkeeping.
type Branch struct {
	Type         ir.Type
	Requirements []Requirement
	Alive        bool
	RemovedBy    *Error

	// Payload carries whatever the caller needs this branch to mean once
	// it is the sole survivor — e.g. which overload of a call it denotes.
	// The declare graph itself never inspects it.
	Payload any
}

// NewBranch constructs an alive branch with no requirements.
func NewBranch(t ir.Type, payload any) *Branch {
	return &Branch{Type: t, Alive: true, Payload: payload}
}

// NewBranchWith constructs an alive branch that depends on the given
// requirements.
func NewBranchWith(t ir.Type, payload any, reqs ...Requirement) *Branch {
	return &Branch{Type: t, Alive: true, Payload: payload, Requirements: reqs}
}

// deps returns the distinct set of groups this branch reads.
func (b *Branch) deps() []GroupIdx {
	seen := map[GroupIdx]bool{}
	var out []GroupIdx
	for _, r := range b.Requirements {
		if !seen[r.Group] {
			seen[r.Group] = true
			out = append(out, r.Group)
		}
	}
	return out
}
