// Package mir lowers a parsed function body (internal/ast) into a MIR tree
// whose expressions carry declare-graph group indices instead of concrete
// types: every literal, variable reference, call, and operator
// application becomes a Group with one Branch per type it could still be,
// and the accompanying internal/declare.Graph narrows those candidates as
// sibling expressions constrain each other. Lowering to the final typed
// internal/ir JSON only happens once the graph is solved (Function.ToIR in
// emit.go, called by internal/compile). Grounded on
// py-declare's mir.rs and pin1yin1-grammar's into_ast.rs, which perform
// the same AST-to-constrained-graph pass before their own solve step.
package mir

import (
	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/lexer"
)

// ExprKind classifies a MIR expression node.
type ExprKind int

const (
	ExprLiteral ExprKind = iota
	ExprVariable
	ExprCall
	ExprOperate
)

// Expr is one lowered expression: its Group is the declare-graph site
// whose eventual sole alive Branch gives this expression's concrete type.
type Expr struct {
	Kind  ExprKind
	Group declare.GroupIdx
	Node  ast.Expr // the originating AST node, kept for diagnostics

	// ExprLiteral
	LiteralText string // IntLit/FloatLit raw text, CharLit/StringLit rendered value

	// ExprVariable
	VariableName string

	// ExprCall
	CallName       string
	CallArgs       []*Expr
	CallCandidates []defs.FnSig // overloads whose arity matched at build time

	// ExprOperate: a unary or binary operator, or zhuan3/fang3su4.
	Op       string
	Operands []*Expr
}

// StmtKind classifies a MIR statement node.
type StmtKind int

const (
	StmtVarDefine StmtKind = iota
	StmtVarStore
	StmtIf
	StmtWhile
	StmtReturn
	StmtExpr
)

// Stmt is one lowered statement.
type Stmt struct {
	Kind StmtKind
	Node ast.Stmt

	// StmtVarDefine / StmtVarStore
	Name  string
	Value *Expr

	// StmtIf
	Clauses []*Clause
	Else    *Block

	// StmtWhile (reuses Clauses[0] as the loop condition)

	// StmtReturn: Value may be nil for a bare return.
}

// Clause is one condition/body pair shared by If-clauses and While.
type Clause struct {
	Stmts []*Stmt
	Tail  *Expr
	Body  *Block
}

// Block is a lowered statement sequence.
type Block struct {
	Stmts []*Stmt
}

// Function is one lowered function body, ready for declare.Graph.Solve.
type Function struct {
	Name       string
	Mangled    string
	ParamNames []string
	ParamTypes []declare.GroupIdx
	ReturnType declare.GroupIdx
	Body       *Block
	Graph      *declare.Graph

	// GroupSpans maps every group built while lowering this function back
	// to the source span it originated from, so a *declare.Error (which
	// only ever names a GroupIdx) can be turned into a located
	// diag.Diagnostic by internal/compile.
	GroupSpans map[declare.GroupIdx]lexer.Span
}
