package declare

import "github.com/pin1yin1/pin1c/internal/ir"

// Graph owns every Group built while lowering one function body. It is
// not safe for concurrent use from multiple goroutines: the parallel
// elaboration mode (SPEC_FULL.md §5) gives each in-flight function body
// its own Graph, so no cross-goroutine sharing of a single graph ever
// occurs. Grounded on py-declare's DeclareGraph (graph.rs).
type Graph struct {
	groups []*Group
}

// NewGraph returns an empty graph.
func NewGraph() *Graph { return &Graph{} }

// Group looks up a group by index.
func (g *Graph) Group(idx GroupIdx) *Group { return g.groups[idx] }

// BuildGroup registers a new group from a caller-supplied branch list.
// Per branch, every Requirement's dependency group records this new
// group in its RDeps (forward-only: a group can only depend on groups
// built before it, so RDeps edges always point from earlier to later
// groups). Branches are self-filtered immediately: a branch whose
// requirement already conflicts with its dependency's *current* alive
// set is born dead, matching py-declare's "BuildGroup self-filters
// first" behavior for groups built after some of their dependencies have
// already been narrowed (e.g. a call built after its arguments).
//
// Once self-filtering settles, every dependency group this new group
// references is pruned: an alive branch there that no surviving branch
// of the new group actually selects (by type) is removed as "never
// used", cascading through RDeps like any other removal. Grounded on
// py-declare's build_group (graph.rs:54-130), which tracks exactly this
// with its used_branches map and a post-build removal pass.
func (g *Graph) BuildGroup(branches []*Branch) GroupIdx {
	idx := GroupIdx(len(g.groups))
	grp := &Group{Idx: idx, Branches: branches}
	g.groups = append(g.groups, grp)

	deps := grp.allDeps()
	for _, dep := range deps {
		d := g.groups[dep]
		d.RDeps = append(d.RDeps, idx)
	}
	for bi, b := range grp.Branches {
		if b.Alive && !g.requirementsHold(b) {
			g.RemoveBranch(idx, BranchIdx(bi), NewError(TypeUnmatch, idx, "requirement already unsatisfiable at build time"))
		}
	}

	for _, dep := range deps {
		used := map[ir.Type]bool{}
		for _, b := range grp.Branches {
			if !b.Alive {
				continue
			}
			for _, req := range b.Requirements {
				if req.Group == dep {
					used[req.Want] = true
				}
			}
		}
		d := g.groups[dep]
		for bi, db := range d.Branches {
			if db.Alive && !used[db.Type] {
				g.RemoveBranch(dep, BranchIdx(bi), NewError(NeverUsed, dep, "no branch of group %d selects %s here", idx, db.Type.String()))
			}
		}
	}
	return idx
}

func (g *Group) allDeps() []GroupIdx {
	seen := map[GroupIdx]bool{}
	var out []GroupIdx
	for _, b := range g.Branches {
		for _, d := range b.deps() {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

func (g *Graph) requirementsHold(b *Branch) bool {
	for _, req := range b.Requirements {
		if !g.groups[req.Group].hasAliveOfType(req.Want) {
			return false
		}
	}
	return true
}

// RemoveBranch marks one branch dead and cascades in both directions:
//
//  1. every group that reads this group (RDeps) re-checks its own alive
//     branches' requirements, and any branch whose requirement is now
//     unsatisfiable is removed in turn, chaining reason as the cause;
//  2. every group this branch itself required (its own Requirements) is
//     re-checked: if the specific branch it selected there is no longer
//     selected by any other alive branch anywhere in the graph, that
//     branch was only ever kept alive for this one's sake and is now
//     "never used", so it is removed too.
//
// RemoveBranch is a no-op if the branch is already dead, so cascades
// that revisit the same branch by more than one path terminate. Grounded
// on py-declare's remove_branch (graph.rs:226-259), whose rdeps walk is
// step 1 and whose deps walk (checking each dependency's own rdeps count)
// is step 2.
func (g *Graph) RemoveBranch(idx GroupIdx, bidx BranchIdx, reason *Error) {
	grp := g.groups[idx]
	b := grp.Branches[bidx]
	if !b.Alive {
		return
	}
	b.Alive = false
	b.RemovedBy = reason

	for _, rdepIdx := range grp.RDeps {
		rdep := g.groups[rdepIdx]
		for bi, rb := range rdep.Branches {
			if !rb.Alive {
				continue
			}
			if !g.requirementsHold(rb) {
				g.RemoveBranch(rdepIdx, BranchIdx(bi),
					reason.Because(TypeUnmatch, rdepIdx, "depends on group %d, which no longer offers %s", idx, rb.Type.String()))
			}
		}
	}

	for _, req := range b.Requirements {
		dep := g.groups[req.Group]
		for dbi, db := range dep.Branches {
			if db.Alive && db.Type.Equal(req.Want) && !g.stillSelected(req.Group, req.Want) {
				g.RemoveBranch(req.Group, BranchIdx(dbi),
					reason.Because(NeverUsed, req.Group, "no remaining branch selects %s here", req.Want.String()))
			}
		}
	}
}

// stillSelected reports whether any alive branch anywhere in the graph
// still requires group dep's branch of type want — used after a branch
// is removed to decide whether the dependency branch it used to select
// is now never used.
func (g *Graph) stillSelected(dep GroupIdx, want ir.Type) bool {
	for _, grp := range g.groups {
		for _, b := range grp.Branches {
			if !b.Alive {
				continue
			}
			for _, req := range b.Requirements {
				if req.Group == dep && req.Want.Equal(want) {
					return true
				}
			}
		}
	}
	return false
}

// DeclareType pins group idx to exactly the concrete type t: every other
// alive branch is removed with reason GroupSolved. If no alive branch
// offers t, the pin itself fails with Unexpect and no branch is touched.
func (g *Graph) DeclareType(idx GroupIdx, t ir.Type) *Error {
	grp := g.groups[idx]
	if !grp.hasAliveOfType(t) {
		return NewError(Unexpect, idx, "declared type %s is not among the remaining candidates", t.String())
	}
	keep := true
	for bi, b := range grp.Branches {
		if !b.Alive {
			continue
		}
		if keep && b.Type.Equal(t) {
			keep = false
			continue
		}
		g.RemoveBranch(idx, BranchIdx(bi), NewError(GroupSolved, idx, "group declared as %s", t.String()))
	}
	return nil
}

// MergeGroup produces a new group representing "a and b must agree on
// type": branches are built for the intersection of a's and b's alive
// types, each depending on both groups, and any alive branch in a or b
// whose type falls outside that intersection is removed as a
// consequence. Returns ConflictSelected if the intersection is empty.
// Grounded on py-declare's merge_group (group.rs).
func (g *Graph) MergeGroup(a, b GroupIdx) (GroupIdx, *Error) {
	ga, gb := g.groups[a], g.groups[b]

	var common []ir.Type
	for _, ba := range ga.Branches {
		if !ba.Alive {
			continue
		}
		if gb.hasAliveOfType(ba.Type) {
			common = append(common, ba.Type)
		}
	}

	if len(common) == 0 {
		return 0, NewError(ConflictSelected, a, "no shared type with group %d", b)
	}

	for bi, ba := range ga.Branches {
		if ba.Alive && !containsType(common, ba.Type) {
			g.RemoveBranch(a, BranchIdx(bi), NewError(ConflictSelected, a, "not shared with group %d", b))
		}
	}
	for bi, bb := range gb.Branches {
		if bb.Alive && !containsType(common, bb.Type) {
			g.RemoveBranch(b, BranchIdx(bi), NewError(ConflictSelected, b, "not shared with group %d", a))
		}
	}

	branches := make([]*Branch, len(common))
	for i, t := range common {
		branches[i] = NewBranchWith(t, nil, Requirement{Group: a, Want: t}, Requirement{Group: b, Want: t})
	}
	return g.BuildGroup(branches), nil
}

func containsType(types []ir.Type, t ir.Type) bool {
	for _, c := range types {
		if c.Equal(t) {
			return true
		}
	}
	return false
}

// Solve checks that every group has reduced to exactly one alive
// branch, returning one error per group that has not. A group with zero
// alive branches reports NonBenchSelected chained (as Previous) to the
// RemovedBy reason of its first dead branch, in branch order, that has
// one; the removal reasons of its other dead branches are not included.
// A group with more than one alive branch reports MultSelected.
func (g *Graph) Solve() []*Error {
	var errs []*Error
	for _, grp := range g.groups {
		alive := grp.AliveBranches()
		switch len(alive) {
		case 1:
			continue
		case 0:
			errs = append(errs, g.unsolvableError(grp))
		default:
			errs = append(errs, NewError(MultSelected, grp.Idx, "%d candidates remain: cannot infer a unique type", len(alive)))
		}
	}
	return errs
}

func (g *Graph) unsolvableError(grp *Group) *Error {
	err := NewError(NonBenchSelected, grp.Idx, "no candidate type remains")
	for _, b := range grp.Branches {
		if b.RemovedBy != nil {
			err.Previous = b.RemovedBy
			break
		}
	}
	return err
}

// Resolve returns the sole alive branch of a solved group and true, or
// nil and false if the group is not uniquely solved.
func (g *Graph) Resolve(idx GroupIdx) (*Branch, bool) {
	return g.groups[idx].Solved()
}
