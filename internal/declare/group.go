package declare

import "github.com/pin1yin1/pin1c/internal/ir"

// Group is one expression site in the declare graph: a set of candidate
// Branches, exactly one of which must end up alive for the graph to
// solve. RDeps is the reverse-edge index — every group that has at least
// one branch depending on this group — populated as those groups are
// built, so RemoveBranch can cascade forward without a full graph scan.
type Group struct {
	Idx      GroupIdx
	Branches []*Branch
	RDeps    []GroupIdx
}

// AliveBranches returns the indices of this group's currently-alive
// branches.
func (g *Group) AliveBranches() []BranchIdx {
	var out []BranchIdx
	for i, b := range g.Branches {
		if b.Alive {
			out = append(out, BranchIdx(i))
		}
	}
	return out
}

// Solved reports whether exactly one branch remains alive, returning it.
func (g *Group) Solved() (*Branch, bool) {
	var found *Branch
	for _, b := range g.Branches {
		if b.Alive {
			if found != nil {
				return nil, false
			}
			found = b
		}
	}
	return found, found != nil
}

// hasAliveOfType reports whether any alive branch in g resolves to t.
func (g *Group) hasAliveOfType(t ir.Type) bool {
	for _, b := range g.Branches {
		if b.Alive && b.Type.Equal(t) {
			return true
		}
	}
	return false
}
