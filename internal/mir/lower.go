package mir

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/ir"
	"github.com/pin1yin1/pin1c/internal/keyword"
	"github.com/pin1yin1/pin1c/internal/lexer"
)

// Lowerer holds the state threaded through one function body's AST->MIR
// pass: the declare graph being built, the overload table (read-only,
// shared across functions), and the lexical scope stack (function-body
// local).
type Lowerer struct {
	graph       *declare.Graph
	overloads   *defs.Overloads
	scopes      *defs.Scopes
	errs        []error
	returnGroup declare.GroupIdx
	groupSpans  map[declare.GroupIdx]lexer.Span
}

// NewLowerer constructs a lowerer for one function body.
func NewLowerer(overloads *defs.Overloads) *Lowerer {
	return &Lowerer{
		graph:      declare.NewGraph(),
		overloads:  overloads,
		scopes:     defs.NewScopes(),
		groupSpans: make(map[declare.GroupIdx]lexer.Span),
	}
}

// Errors returns every error recorded while lowering.
func (l *Lowerer) Errors() []error { return l.errs }

func (l *Lowerer) fail(format string, args ...any) {
	l.errs = append(l.errs, fmt.Errorf(format, args...))
}

// buildGroup wraps Graph.BuildGroup, additionally recording the source
// span the group was built for — the declare graph itself stays free of
// any notion of source position, but a diagnostic naming a group (an
// ambiguous overload, an unsolved literal) needs somewhere to point.
func (l *Lowerer) buildGroup(branches []*declare.Branch, span lexer.Span) declare.GroupIdx {
	g := l.graph.BuildGroup(branches)
	l.groupSpans[g] = span
	return g
}

// ResolveSignature resolves fn's parameter and return types and mangles
// its name into a defs.FnSig, without touching any declare graph or
// overload table. This is the half of function elaboration that has to
// happen for every function in a file before any function's body can be
// lowered — a call to a sibling defined later in the file (or to itself)
// needs that sibling's signature already resolved, per spec.md's "forward
// reference and recursion are unrestricted" rule. internal/compile calls
// this once per function, sequentially, before lowering any body.
func ResolveSignature(fn *ast.FnDefine) (defs.FnSig, []error) {
	var errs []error

	retType, err := ResolveType(fn.ReturnType)
	if err != nil {
		errs = append(errs, fmt.Errorf("function %s: return type: %w", fn.Name.Name, err))
	}

	paramTypes := make([]ir.Type, len(fn.Params))
	for i, p := range fn.Params {
		pt, err := ResolveType(p.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("function %s: parameter %s: %w", fn.Name.Name, p.Name.Name, err))
			continue
		}
		paramTypes[i] = pt
	}

	mangled := ir.Mangle(fn.Name.Name, paramTypes)
	return defs.FnSig{Name: fn.Name.Name, Mangled: mangled, Params: paramTypes, Return: retType}, errs
}

// LowerBody lowers fn's body against a signature already registered in
// overloads, declaring its parameters as immutable bindings and its
// return type as a fixed declare-graph group, then solves the graph.
// Literal groups are narrowed by whatever actually uses them (a call's
// parameter type, a cast, an arithmetic peer) via the declare graph's own
// "never used" pruning (graph.go's BuildGroup/RemoveBranch) rather than
// any defaulting pass — a literal with no use at all correctly solves as
// ambiguous (MultSelected), matching spec.md §4.5/§8. Unlike LowerFunction,
// LowerBody never registers sig itself — the caller (internal/compile's
// signature pass) already did that, sequentially, for every function in
// the file.
func LowerBody(fn *ast.FnDefine, sig defs.FnSig, overloads *defs.Overloads) (*Function, []*declare.Error, []error) {
	l := NewLowerer(overloads)

	retGroup := l.buildGroup([]*declare.Branch{declare.NewBranch(sig.Return, nil)}, fn.Span())
	l.returnGroup = retGroup

	paramGroups := make([]declare.GroupIdx, len(fn.Params))
	paramNames := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		pt := sig.Params[i]
		paramGroups[i] = l.buildGroup([]*declare.Branch{declare.NewBranch(pt, nil)}, p.Span())
		paramNames[i] = p.Name.Name
		if err := l.scopes.Declare(p.Name.Name, defs.Var{Group: paramGroups[i], Const: true}); err != nil {
			l.fail("function %s: %v", fn.Name.Name, err)
		}
	}

	body := l.lowerBlock(fn.Body)

	declErrs := l.graph.Solve()

	f := &Function{
		Name:       fn.Name.Name,
		Mangled:    sig.Mangled,
		ParamNames: paramNames,
		ParamTypes: paramGroups,
		ReturnType: retGroup,
		Body:       body,
		Graph:      l.graph,
		GroupSpans: l.groupSpans,
	}
	return f, declErrs, l.errs
}

// LowerFunction resolves fn's signature, registers it, and lowers its
// body in one call — the one-function-at-a-time convenience entry point
// used by tests and anywhere a whole file's forward-reference visibility
// doesn't matter. internal/compile's pipeline uses ResolveSignature and
// LowerBody directly instead, so every signature in a file is registered
// before any body is lowered.
func LowerFunction(fn *ast.FnDefine, overloads *defs.Overloads) (*Function, []*declare.Error, []error) {
	sig, sigErrs := ResolveSignature(fn)
	if err := overloads.Register(sig); err != nil {
		sigErrs = append(sigErrs, err)
	}
	f, declErrs, errs := LowerBody(fn, sig, overloads)
	return f, declErrs, append(sigErrs, errs...)
}

func (l *Lowerer) lowerBlock(b *ast.Block) *Block {
	l.scopes.Push()
	defer l.scopes.Pop()
	out := &Block{}
	for _, s := range b.Stmts {
		if st := l.lowerStmt(s); st != nil {
			out.Stmts = append(out.Stmts, st)
		}
	}
	return out
}

func (l *Lowerer) lowerStmt(s ast.Stmt) *Stmt {
	switch n := s.(type) {
	case *ast.CommentStmt:
		return nil // comments carry no MIR meaning, dropped per DESIGN.md
	case *ast.VarDefine:
		typ, err := ResolveType(n.Type)
		if err != nil {
			l.fail("variable %s: %v", n.Name.Name, err)
			return nil
		}
		group := l.buildGroup([]*declare.Branch{declare.NewBranch(typ, nil)}, n.Span())
		value := l.lowerExpr(n.Value)
		l.requireGroupType(value.Group, typ)
		if err := l.scopes.Declare(n.Name.Name, defs.Var{Group: group, Const: false}); err != nil {
			l.fail("%v", err)
		}
		return &Stmt{Kind: StmtVarDefine, Node: n, Name: n.Name.Name, Value: value}
	case *ast.VarStore:
		if err := l.scopes.CheckAssignable(n.Name.Name); err != nil {
			l.fail("%v", err)
			return nil
		}
		v, _ := l.scopes.Lookup(n.Name.Name)
		value := l.lowerExpr(n.Value)
		if _, err := l.graph.MergeGroup(v.Group, value.Group); err != nil {
			l.errs = append(l.errs, err)
		}
		return &Stmt{Kind: StmtVarStore, Node: n, Name: n.Name.Name, Value: value}
	case *ast.If:
		clauses := make([]*Clause, len(n.Clauses))
		for i, c := range n.Clauses {
			clauses[i] = l.lowerClause(c.Condition, c.Body)
		}
		var elseBlock *Block
		if n.Else != nil {
			elseBlock = l.lowerBlock(n.Else)
		}
		return &Stmt{Kind: StmtIf, Node: n, Clauses: clauses, Else: elseBlock}
	case *ast.While:
		clause := l.lowerClause(n.Condition, n.Body)
		return &Stmt{Kind: StmtWhile, Node: n, Clauses: []*Clause{clause}}
	case *ast.Return:
		var value *Expr
		if n.Value != nil {
			value = l.lowerExpr(n.Value)
			if _, err := l.graph.MergeGroup(value.Group, l.returnGroup); err != nil {
				l.errs = append(l.errs, err)
			}
		}
		return &Stmt{Kind: StmtReturn, Node: n, Value: value}
	case *ast.ExprStmt:
		value := l.lowerExpr(n.Expr)
		return &Stmt{Kind: StmtExpr, Node: n, Value: value}
	default:
		l.fail("unhandled statement type %T", s)
		return nil
	}
}

func (l *Lowerer) lowerClause(cond *ast.Condition, body *ast.Block) *Clause {
	l.scopes.Push()
	defer l.scopes.Pop()
	var stmts []*Stmt
	for _, s := range cond.Stmts {
		if st := l.lowerStmt(s); st != nil {
			stmts = append(stmts, st)
		}
	}
	tail := l.lowerExpr(cond.Tail)
	l.requireGroupType(tail.Group, ir.NewPrimitive(ir.Bool))
	return &Clause{Stmts: stmts, Tail: tail, Body: l.lowerBlock(body)}
}

// requireGroupType pins a group to exactly t, recording a lowering error
// if the group no longer offers it.
func (l *Lowerer) requireGroupType(g declare.GroupIdx, t ir.Type) {
	if err := l.graph.DeclareType(g, t); err != nil {
		l.errs = append(l.errs, err)
	}
}

func (l *Lowerer) lowerExpr(e ast.Expr) *Expr {
	switch n := e.(type) {
	case *ast.IntLit:
		branches := make([]*declare.Branch, len(ir.IntegerPrimitives))
		for i, p := range ir.IntegerPrimitives {
			branches[i] = declare.NewBranch(ir.NewPrimitive(p), nil)
		}
		g := l.buildGroup(branches, n.Span())
		return &Expr{Kind: ExprLiteral, Group: g, Node: n, LiteralText: n.Text}

	case *ast.FloatLit:
		branches := make([]*declare.Branch, len(ir.FloatPrimitives))
		for i, p := range ir.FloatPrimitives {
			branches[i] = declare.NewBranch(ir.NewPrimitive(p), nil)
		}
		g := l.buildGroup(branches, n.Span())
		return &Expr{Kind: ExprLiteral, Group: g, Node: n, LiteralText: n.Text}

	case *ast.CharLit:
		g := l.buildGroup([]*declare.Branch{declare.NewBranch(ir.NewPrimitive(ir.U32), nil)}, n.Span())
		return &Expr{Kind: ExprLiteral, Group: g, Node: n, LiteralText: string(n.Value)}

	case *ast.StringLit:
		t := ir.NewComplex(ir.ComplexType{
			Decorators: []ir.TypeDecorator{{Kind: ir.DecoratorArray, N: len(n.Value) + 1}},
			Name:       string(ir.U8),
		})
		g := l.buildGroup([]*declare.Branch{declare.NewBranch(t, nil)}, n.Span())
		return &Expr{Kind: ExprLiteral, Group: g, Node: n, LiteralText: n.Value}

	case *ast.VariableExpr:
		v, ok := l.scopes.Lookup(n.Name.Name)
		if !ok {
			l.fail("undeclared variable %q", n.Name.Name)
			g := l.buildGroup(nil, n.Span())
			return &Expr{Kind: ExprVariable, Group: g, Node: n, VariableName: n.Name.Name}
		}
		return &Expr{Kind: ExprVariable, Group: v.Group, Node: n, VariableName: n.Name.Name}

	case *ast.CallExpr:
		return l.lowerCall(n)

	case *ast.UnaryExpr:
		return l.lowerUnary(n)

	case *ast.BinaryExpr:
		return l.lowerBinary(n)

	case *ast.CastExpr:
		return l.lowerCast(n)

	default:
		l.fail("unhandled expression type %T", e)
		g := l.buildGroup(nil, e.Span())
		return &Expr{Group: g, Node: e}
	}
}

func (l *Lowerer) lowerCall(n *ast.CallExpr) *Expr {
	args := make([]*Expr, len(n.Args))
	argGroups := make([]declare.GroupIdx, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.lowerExpr(a)
		argGroups[i] = args[i].Group
	}

	candidates := l.overloads.CandidatesByArity(n.Name.Name, len(n.Args))
	if len(candidates) == 0 {
		l.fail("no overload of %q takes %d argument(s)", n.Name.Name, len(n.Args))
		g := l.buildGroup(nil, n.Span())
		return &Expr{Kind: ExprCall, Group: g, Node: n, CallName: n.Name.Name, CallArgs: args}
	}

	branches := make([]*declare.Branch, len(candidates))
	for i, sig := range candidates {
		branches[i] = declare.NewBranchWith(sig.Return, sig, declare.RequireAll(argGroups, sig.Params)...)
	}
	g := l.buildGroup(branches, n.Span())
	return &Expr{Kind: ExprCall, Group: g, Node: n, CallName: n.Name.Name, CallArgs: args, CallCandidates: candidates}
}

func (l *Lowerer) lowerUnary(n *ast.UnaryExpr) *Expr {
	operand := l.lowerExpr(n.Operand)

	switch n.Op {
	case "fei1": // logical not: operand and result are both bool
		l.requireGroupType(operand.Group, ir.NewPrimitive(ir.Bool))
		return &Expr{Kind: ExprOperate, Group: operand.Group, Node: n, Op: n.Op, Operands: []*Expr{operand}}

	case "wei4fei1": // bitwise not: result is operand's type, restricted to integers
		l.restrictToIntegers(operand.Group)
		return &Expr{Kind: ExprOperate, Group: operand.Group, Node: n, Op: n.Op, Operands: []*Expr{operand}}

	case "qu3zhi3": // address-of: result is a pointer to whatever the operand resolves to
		g := l.deriveGroup(operand.Group, n.Span(), func(t ir.Type) (ir.Type, bool) {
			return ir.NewComplex(ir.ComplexType{Decorators: prependDecorator(t, ir.DecoratorPointer), Name: underlyingName(t)}), true
		})
		return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{operand}}

	case "fang3zhi3": // dereference: result strips one pointer/reference layer
		g := l.deriveGroup(operand.Group, n.Span(), func(t ir.Type) (ir.Type, bool) {
			if t.Complex == nil || len(t.Complex.Decorators) == 0 {
				return ir.Type{}, false
			}
			outer := t.Complex.Decorators[0]
			if outer.Kind != ir.DecoratorPointer && outer.Kind != ir.DecoratorReference {
				return ir.Type{}, false
			}
			rest := t.Complex.Decorators[1:]
			if len(rest) == 0 {
				return ir.Type{Primitive: primitiveNamed(t.Complex.Name)}, true
			}
			return ir.NewComplex(ir.ComplexType{Decorators: rest, Name: t.Complex.Name}), true
		})
		return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{operand}}

	case "chang2du4": // length-of: always usize; scope-reduced, see DESIGN.md
		g := l.buildGroup([]*declare.Branch{declare.NewBranch(ir.NewPrimitive(ir.Usize), nil)}, n.Span())
		return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{operand}}

	default:
		l.fail("unhandled unary operator %q", n.Op)
		return &Expr{Kind: ExprOperate, Group: operand.Group, Node: n, Op: n.Op, Operands: []*Expr{operand}}
	}
}

func (l *Lowerer) lowerBinary(n *ast.BinaryExpr) *Expr {
	left := l.lowerExpr(n.Left)
	right := l.lowerExpr(n.Right)
	op, known := keyword.Operators[n.Op]
	if !known {
		l.fail("unknown operator %q", n.Op)
	}

	switch {
	case n.Op == keyword.GetElementKeyword:
		return l.lowerGetElement(n, left, right)

	case known && op.Kind == keyword.Compare:
		if _, err := l.graph.MergeGroup(left.Group, right.Group); err != nil {
			l.errs = append(l.errs, err)
		}
		g := l.buildGroup([]*declare.Branch{declare.NewBranch(ir.NewPrimitive(ir.Bool), nil)}, n.Span())
		return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{left, right}}

	case known && op.Kind == keyword.Logical:
		l.requireGroupType(left.Group, ir.NewPrimitive(ir.Bool))
		l.requireGroupType(right.Group, ir.NewPrimitive(ir.Bool))
		g := l.buildGroup([]*declare.Branch{declare.NewBranch(ir.NewPrimitive(ir.Bool), nil)}, n.Span())
		return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{left, right}}

	case known && op.Kind == keyword.Bitwise:
		merged, err := l.graph.MergeGroup(left.Group, right.Group)
		if err != nil {
			l.errs = append(l.errs, err)
			g := l.buildGroup(nil, n.Span())
			return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{left, right}}
		}
		l.restrictToIntegers(merged)
		return &Expr{Kind: ExprOperate, Group: merged, Node: n, Op: n.Op, Operands: []*Expr{left, right}}

	default: // Arithmetic
		merged, err := l.graph.MergeGroup(left.Group, right.Group)
		if err != nil {
			l.errs = append(l.errs, err)
			g := l.buildGroup(nil, n.Span())
			return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{left, right}}
		}
		return &Expr{Kind: ExprOperate, Group: merged, Node: n, Op: n.Op, Operands: []*Expr{left, right}}
	}
}

// lowerGetElement models `base fang3su4 index`: index must be an integer,
// and the result is the base's array element type, one layer of Array
// decoration removed.
func (l *Lowerer) lowerGetElement(n *ast.BinaryExpr, base, index *Expr) *Expr {
	l.restrictToIntegers(index.Group)
	g := l.deriveGroup(base.Group, n.Span(), func(t ir.Type) (ir.Type, bool) {
		if t.Complex == nil || len(t.Complex.Decorators) == 0 || t.Complex.Decorators[0].Kind != ir.DecoratorArray {
			return ir.Type{}, false
		}
		rest := t.Complex.Decorators[1:]
		if len(rest) == 0 {
			return ir.Type{Primitive: primitiveNamed(t.Complex.Name)}, true
		}
		return ir.NewComplex(ir.ComplexType{Decorators: rest, Name: t.Complex.Name}), true
	})
	return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: n.Op, Operands: []*Expr{base, index}}
}

func (l *Lowerer) lowerCast(n *ast.CastExpr) *Expr {
	target, err := ResolveType(n.Type)
	if err != nil {
		l.fail("cast: %v", err)
	}

	value := l.lowerExpr(n.Value)
	// A literal cast source is pinned immediately to the cast's own
	// concrete type when they're the same kind (int->int, float->float);
	// a cross-kind cast (e.g. an int literal cast to fu2) does not
	// constrain the literal's group at all, since the conversion
	// reinterprets the value rather than identifying it with the target;
	// unless something else narrows it, that group solves as ambiguous.
	if _, isLit := value.Node.(*ast.IntLit); isLit && ir.IsInteger(primitiveOf(target)) {
		l.requireGroupType(value.Group, target)
	}
	if _, isLit := value.Node.(*ast.FloatLit); isLit && ir.IsFloat(primitiveOf(target)) {
		l.requireGroupType(value.Group, target)
	}

	g := l.buildGroup([]*declare.Branch{declare.NewBranch(target, nil)}, n.Span())
	return &Expr{Kind: ExprOperate, Group: g, Node: n, Op: keyword.CastKeyword, Operands: []*Expr{value}}
}

func primitiveOf(t ir.Type) ir.PrimitiveType {
	if t.Primitive != nil {
		return *t.Primitive
	}
	return ""
}

func primitiveNamed(name string) *ir.PrimitiveType {
	p := ir.PrimitiveType(name)
	return &p
}

func prependDecorator(t ir.Type, kind ir.TypeDecoratorKind) []ir.TypeDecorator {
	var existing []ir.TypeDecorator
	if t.Complex != nil {
		existing = t.Complex.Decorators
	}
	out := make([]ir.TypeDecorator, 0, len(existing)+1)
	out = append(out, ir.TypeDecorator{Kind: kind})
	return append(out, existing...)
}

func underlyingName(t ir.Type) string {
	if t.Complex != nil {
		return t.Complex.Name
	}
	return string(*t.Primitive)
}

// restrictToIntegers removes every alive branch in g that isn't an
// integer primitive, used by bitwise operators.
func (l *Lowerer) restrictToIntegers(g declare.GroupIdx) {
	grp := l.graph.Group(g)
	for i, b := range grp.Branches {
		if !b.Alive {
			continue
		}
		if b.Type.Primitive == nil || !ir.IsInteger(*b.Type.Primitive) {
			l.graph.RemoveBranch(g, declare.BranchIdx(i), declare.NewError(declare.TypeUnmatch, g, "not an integer type"))
		}
	}
}

// deriveGroup builds a new group with one branch per alive branch of dep
// that transform accepts, each depending on dep equaling that branch's
// original type. Used for address-of/dereference/get-element, which
// reshape a type by adding or removing one decorator layer rather than
// picking from a fixed candidate list.
func (l *Lowerer) deriveGroup(dep declare.GroupIdx, span lexer.Span, transform func(ir.Type) (ir.Type, bool)) declare.GroupIdx {
	depGrp := l.graph.Group(dep)
	var branches []*declare.Branch
	for _, b := range depGrp.Branches {
		if !b.Alive {
			continue
		}
		mapped, ok := transform(b.Type)
		if !ok {
			continue
		}
		branches = append(branches, declare.NewBranchWith(mapped, nil, declare.RequireType(dep, b.Type)))
	}
	return l.buildGroup(branches, span)
}
