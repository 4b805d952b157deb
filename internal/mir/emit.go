package mir

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/ir"
)

// emitter flattens nested calls/operators into three-address-code-style
// temporaries while walking a solved Function, grounded on py-ir's own
// flattening of nested expressions into a flat Statements list.
type emitter struct {
	graph  *declare.Graph
	tmpSeq int
}

// ToIR converts a solved Function into its final typed IR node. Must
// only be called after declare.Graph.Solve() reports no errors for f's
// graph.
func (f *Function) ToIR() (ir.Item, error) {
	e := &emitter{graph: f.Graph}

	params := make([]ir.Param, len(f.ParamNames))
	for i, name := range f.ParamNames {
		t, err := e.resolvedType(f.ParamTypes[i])
		if err != nil {
			return ir.Item{}, err
		}
		params[i] = ir.Param{Type: t, Name: name}
	}
	retType, err := e.resolvedType(f.ReturnType)
	if err != nil {
		return ir.Item{}, err
	}
	body, err := e.emitBlock(f.Body)
	if err != nil {
		return ir.Item{}, err
	}

	return ir.Item{FnDefine: &ir.FnDefine{
		Type:   retType,
		Name:   f.Mangled,
		Params: params,
		Body:   body,
	}}, nil
}

func (e *emitter) resolvedType(g declare.GroupIdx) (ir.TypeDefine, error) {
	b, ok := e.graph.Resolve(g)
	if !ok {
		return ir.TypeDefine{}, fmt.Errorf("internal error: group %d was not solved before emission", g)
	}
	return ir.ToTypeDefine(b.Type), nil
}

func (e *emitter) newTemp() string {
	e.tmpSeq++
	return fmt.Sprintf("_t%d", e.tmpSeq)
}

func (e *emitter) emitBlock(b *Block) (ir.Statements, error) {
	out := ir.Statements{}
	for _, s := range b.Stmts {
		stmts, err := e.emitStmt(s)
		if err != nil {
			return ir.Statements{}, err
		}
		out.Stmts = append(out.Stmts, stmts...)
	}
	if n := len(out.Stmts); n > 0 {
		out.Returned = statementReturns(out.Stmts[n-1])
	}
	return out, nil
}

// statementReturns reports whether control flow reaching the end of s is
// known to have already returned: s is itself a bare Return, or s is an
// If with an else branch where every clause body and the else body are
// themselves known to return (their own Returned flag, set by the
// recursive emitBlock calls that built them).
func statementReturns(s ir.Statement) bool {
	if s.Return != nil {
		return true
	}
	if s.If == nil || s.If.Else == nil || !s.If.Else.Returned {
		return false
	}
	for _, c := range s.If.Clauses {
		if !c.Body.Returned {
			return false
		}
	}
	return true
}

func (e *emitter) emitStmt(s *Stmt) ([]ir.Statement, error) {
	switch s.Kind {
	case StmtVarDefine:
		av, pre, err := e.flattenTop(s.Value)
		if err != nil {
			return nil, err
		}
		typ, err := e.resolvedType(s.Value.Group)
		if err != nil {
			return nil, err
		}
		return append(pre, ir.Statement{VarDefine: &ir.VarDefineNode{Type: typ, Name: s.Name, Value: av}}), nil

	case StmtVarStore:
		av, pre, err := e.flattenTop(s.Value)
		if err != nil {
			return nil, err
		}
		return append(pre, ir.Statement{VarStore: &ir.VarStoreNode{Name: s.Name, Value: av}}), nil

	case StmtReturn:
		if s.Value == nil {
			return []ir.Statement{{Return: &ir.ReturnNode{}}}, nil
		}
		av, pre, err := e.flattenTop(s.Value)
		if err != nil {
			return nil, err
		}
		return append(pre, ir.Statement{Return: &ir.ReturnNode{Value: &av}}), nil

	case StmtExpr:
		av, pre, err := e.flattenTop(s.Value)
		if err != nil {
			return nil, err
		}
		return append(pre, ir.Statement{Expr: &av}), nil

	case StmtIf:
		clauses := make([]ir.IfClauseNode, len(s.Clauses))
		for i, c := range s.Clauses {
			cond, err := e.emitClauseCond(c)
			if err != nil {
				return nil, err
			}
			body, err := e.emitBlock(c.Body)
			if err != nil {
				return nil, err
			}
			clauses[i] = ir.IfClauseNode{Cond: cond, Body: body}
		}
		var elseStmts *ir.Statements
		if s.Else != nil {
			body, err := e.emitBlock(s.Else)
			if err != nil {
				return nil, err
			}
			elseStmts = &body
		}
		return []ir.Statement{{If: &ir.IfNode{Clauses: clauses, Else: elseStmts}}}, nil

	case StmtWhile:
		cond, err := e.emitClauseCond(s.Clauses[0])
		if err != nil {
			return nil, err
		}
		body, err := e.emitBlock(s.Clauses[0].Body)
		if err != nil {
			return nil, err
		}
		return []ir.Statement{{While: &ir.WhileNode{Cond: cond, Body: body}}}, nil

	default:
		return nil, fmt.Errorf("unhandled MIR statement kind %v", s.Kind)
	}
}

// emitClauseCond renders a Clause's condition statements plus tail
// expression as a Statements block whose last entry is the tail's
// AssignValue lifted to an expression statement — If/While headers have
// no dedicated "tail value" slot in the IR, so the tail becomes the
// block's final bare-expression statement by convention.
func (e *emitter) emitClauseCond(c *Clause) (ir.Statements, error) {
	var out ir.Statements
	for _, s := range c.Stmts {
		stmts, err := e.emitStmt(s)
		if err != nil {
			return ir.Statements{}, err
		}
		out.Stmts = append(out.Stmts, stmts...)
	}
	av, pre, err := e.flattenTop(c.Tail)
	if err != nil {
		return ir.Statements{}, err
	}
	out.Stmts = append(out.Stmts, pre...)
	out.Stmts = append(out.Stmts, ir.Statement{Expr: &av})
	return out, nil
}

// flattenTop converts expr into the AssignValue for a statement slot that
// directly accepts one (VarDefine/VarStore/Return/ExprStmt): a call or
// operator application renders directly, without itself being wrapped in
// a temporary. Its arguments/operands go through flattenSub, which does
// introduce a temporary for any non-leaf sub-expression.
func (e *emitter) flattenTop(expr *Expr) (ir.AssignValue, []ir.Statement, error) {
	switch expr.Kind {
	case ExprLiteral:
		v, err := e.leafValue(expr)
		if err != nil {
			return ir.AssignValue{}, nil, err
		}
		return ir.AssignValue{Value: &v}, nil, nil

	case ExprVariable:
		v, err := e.leafValue(expr)
		if err != nil {
			return ir.AssignValue{}, nil, err
		}
		return ir.AssignValue{Value: &v}, nil, nil

	case ExprCall:
		b, ok := e.graph.Resolve(expr.Group)
		if !ok {
			return ir.AssignValue{}, nil, fmt.Errorf("call to %q was not resolved to one overload", expr.CallName)
		}
		sig := b.Payload.(defs.FnSig)
		args := make([]ir.Value, len(expr.CallArgs))
		var pre []ir.Statement
		for i, a := range expr.CallArgs {
			v, stmts, err := e.flattenSub(a)
			if err != nil {
				return ir.AssignValue{}, nil, err
			}
			args[i] = v
			pre = append(pre, stmts...)
		}
		return ir.AssignValue{FnCall: &ir.FnCallNode{Name: sig.Mangled, Args: args}}, pre, nil

	case ExprOperate:
		operands := make([]ir.Value, len(expr.Operands))
		var pre []ir.Statement
		for i, o := range expr.Operands {
			v, stmts, err := e.flattenSub(o)
			if err != nil {
				return ir.AssignValue{}, nil, err
			}
			operands[i] = v
			pre = append(pre, stmts...)
		}
		b, ok := e.graph.Resolve(expr.Group)
		if !ok {
			return ir.AssignValue{}, nil, fmt.Errorf("operator %q result was not solved", expr.Op)
		}
		return ir.AssignValue{Operate: &ir.OperateNode{Op: expr.Op, PrimitiveTy: b.Type.Primitive, Operands: operands}}, pre, nil

	default:
		return ir.AssignValue{}, nil, fmt.Errorf("unhandled MIR expression kind %v", expr.Kind)
	}
}

// flattenSub renders expr as a bare Value, introducing a `_tN` temporary
// (via a VarDefine statement) when expr is itself a call or operator
// application.
func (e *emitter) flattenSub(expr *Expr) (ir.Value, []ir.Statement, error) {
	if expr.Kind == ExprLiteral || expr.Kind == ExprVariable {
		v, err := e.leafValue(expr)
		return v, nil, err
	}
	av, pre, err := e.flattenTop(expr)
	if err != nil {
		return ir.Value{}, nil, err
	}
	typ, err := e.resolvedType(expr.Group)
	if err != nil {
		return ir.Value{}, nil, err
	}
	name := e.newTemp()
	pre = append(pre, ir.Statement{VarDefine: &ir.VarDefineNode{Type: typ, Name: name, Value: av}})
	return ir.Value{Variable: &name}, pre, nil
}

func (e *emitter) leafValue(expr *Expr) (ir.Value, error) {
	switch expr.Kind {
	case ExprVariable:
		name := expr.VariableName
		return ir.Value{Variable: &name}, nil
	case ExprLiteral:
		b, ok := e.graph.Resolve(expr.Group)
		if !ok {
			return ir.Value{}, fmt.Errorf("literal %q was not solved", expr.LiteralText)
		}
		if b.Type.Primitive == nil {
			return ir.Value{}, fmt.Errorf("literal %q resolved to a non-primitive type", expr.LiteralText)
		}
		return ir.Value{Literal: &ir.LiteralNode{Lit: expr.LiteralText, PrimitiveTy: *b.Type.Primitive}}, nil
	default:
		return ir.Value{}, fmt.Errorf("%v is not a leaf expression", expr.Kind)
	}
}
