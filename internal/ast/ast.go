// Package ast defines the parse tree produced by internal/parser: the shape
// of a program after grammar rules have matched, before any name resolution
// or type inference has happened.
package ast

import "github.com/pin1yin1/pin1c/internal/lexer"

// Node is any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is a type annotation node.
type TypeExpr interface {
	Node
	typeNode()
}

// File is a parsed compilation unit: a flat list of function definitions.
type File struct {
	Fns  []*FnDefine
	span lexer.Span
}

func (f *File) Span() lexer.Span { return f.span }

// NewFile constructs a file node.
func NewFile(fns []*FnDefine, span lexer.Span) *File {
	return &File{Fns: fns, span: span}
}

// Ident is a single identifier token.
type Ident struct {
	Name string
	span lexer.Span
}

func (i *Ident) Span() lexer.Span { return i.span }
func (*Ident) exprNode()          {}

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// Param is a single function parameter: a type followed by a name.
type Param struct {
	Type TypeExpr
	Name *Ident
	span lexer.Span
}

func (p *Param) Span() lexer.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(typ TypeExpr, name *Ident, span lexer.Span) *Param {
	return &Param{Type: typ, Name: name, span: span}
}

// FnDefine is a function definition: `ty name can1 params jie2 body`.
type FnDefine struct {
	ReturnType TypeExpr
	Name       *Ident
	Params     []*Param
	Body       *Block
	span       lexer.Span
}

func (f *FnDefine) Span() lexer.Span { return f.span }

// NewFnDefine constructs a function definition node.
func NewFnDefine(ret TypeExpr, name *Ident, params []*Param, body *Block, span lexer.Span) *FnDefine {
	return &FnDefine{ReturnType: ret, Name: name, Params: params, Body: body, span: span}
}

// Block is a `han2 stmts* jie2` bracketed statement sequence.
type Block struct {
	Stmts []Stmt
	span  lexer.Span
}

func (b *Block) Span() lexer.Span { return b.span }

// NewBlock constructs a block node.
func NewBlock(stmts []Stmt, span lexer.Span) *Block {
	return &Block{Stmts: stmts, span: span}
}

// CommentStmt is a `shi4 ... jie2` comment statement, kept as its own AST
// node (rather than lexical trivia) and dropped during AST->MIR lowering.
type CommentStmt struct {
	Text string
	span lexer.Span
}

func (c *CommentStmt) Span() lexer.Span { return c.span }
func (*CommentStmt) stmtNode()          {}

// NewCommentStmt constructs a comment statement node.
func NewCommentStmt(text string, span lexer.Span) *CommentStmt {
	return &CommentStmt{Text: text, span: span}
}

// VarDefine introduces a new variable: `ty name wei2 value fen1`.
type VarDefine struct {
	Type  TypeExpr
	Name  *Ident
	Value Expr
	span  lexer.Span
}

func (v *VarDefine) Span() lexer.Span { return v.span }
func (*VarDefine) stmtNode()          {}

// NewVarDefine constructs a variable-definition statement node.
func NewVarDefine(typ TypeExpr, name *Ident, value Expr, span lexer.Span) *VarDefine {
	return &VarDefine{Type: typ, Name: name, Value: value, span: span}
}

// VarStore assigns to an existing variable: `name wei2 value fen1`.
type VarStore struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

func (v *VarStore) Span() lexer.Span { return v.span }
func (*VarStore) stmtNode()          {}

// NewVarStore constructs an assignment statement node.
func NewVarStore(name *Ident, value Expr, span lexer.Span) *VarStore {
	return &VarStore{Name: name, Value: value, span: span}
}

// Condition is a small statement sequence whose last expression's value is
// the test used by If/While, grounded on spec.md's "If / while conditions"
// rule.
type Condition struct {
	Stmts []Stmt
	Tail  Expr
	span  lexer.Span
}

func (c *Condition) Span() lexer.Span { return c.span }

// NewCondition constructs a condition node.
func NewCondition(stmts []Stmt, tail Expr, span lexer.Span) *Condition {
	return &Condition{Stmts: stmts, Tail: tail, span: span}
}

// IfClause is a single `ruo4`/`ze2 ruo4` branch.
type IfClause struct {
	Condition *Condition
	Body      *Block
	span      lexer.Span
}

func (c *IfClause) Span() lexer.Span { return c.span }

// NewIfClause constructs an if-clause node.
func NewIfClause(cond *Condition, body *Block, span lexer.Span) *IfClause {
	return &IfClause{Condition: cond, Body: body, span: span}
}

// If is an if / else-if / else chain.
type If struct {
	Clauses []*IfClause
	Else    *Block // nil when there is no trailing else
	span    lexer.Span
}

func (s *If) Span() lexer.Span { return s.span }
func (*If) stmtNode()          {}

// NewIf constructs an if statement node.
func NewIf(clauses []*IfClause, elseBlock *Block, span lexer.Span) *If {
	return &If{Clauses: clauses, Else: elseBlock, span: span}
}

// While is a `chong2 han2 cond* jie2 body` loop.
type While struct {
	Condition *Condition
	Body      *Block
	span      lexer.Span
}

func (s *While) Span() lexer.Span { return s.span }
func (*While) stmtNode()          {}

// NewWhile constructs a while statement node.
func NewWhile(cond *Condition, body *Block, span lexer.Span) *While {
	return &While{Condition: cond, Body: body, span: span}
}

// Return is a `fan3 value fen1` statement. Value is nil for a bare return.
type Return struct {
	Value Expr
	span  lexer.Span
}

func (s *Return) Span() lexer.Span { return s.span }
func (*Return) stmtNode()          {}

// NewReturn constructs a return statement node.
func NewReturn(value Expr, span lexer.Span) *Return {
	return &Return{Value: value, span: span}
}

// ExprStmt lifts an expression (almost always a call) to statement
// position.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

func (s *ExprStmt) Span() lexer.Span { return s.span }
func (*ExprStmt) stmtNode()          {}

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

// IntLit is an integer literal, stored as text until the declare graph
// pins it to a concrete width/signedness.
type IntLit struct {
	Text string
	span lexer.Span
}

func (l *IntLit) Span() lexer.Span { return l.span }
func (*IntLit) exprNode()          {}

// NewIntLit constructs an integer literal node.
func NewIntLit(text string, span lexer.Span) *IntLit {
	return &IntLit{Text: text, span: span}
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Text string
	span lexer.Span
}

func (l *FloatLit) Span() lexer.Span { return l.span }
func (*FloatLit) exprNode()          {}

// NewFloatLit constructs a float literal node.
func NewFloatLit(text string, span lexer.Span) *FloatLit {
	return &FloatLit{Text: text, span: span}
}

// CharLit is a `wen2`-introduced character literal; always u32.
type CharLit struct {
	Value rune
	span  lexer.Span
}

func (l *CharLit) Span() lexer.Span { return l.span }
func (*CharLit) exprNode()          {}

// NewCharLit constructs a character literal node.
func NewCharLit(value rune, span lexer.Span) *CharLit {
	return &CharLit{Value: value, span: span}
}

// StringLit is a `chuan4`-introduced string literal; lowers to a fixed
// array of u8.
type StringLit struct {
	Value string
	span  lexer.Span
}

func (l *StringLit) Span() lexer.Span { return l.span }
func (*StringLit) exprNode()          {}

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// VariableExpr is a reference to a previously-defined variable or
// parameter.
type VariableExpr struct {
	Name *Ident
	span lexer.Span
}

func (e *VariableExpr) Span() lexer.Span { return e.span }
func (*VariableExpr) exprNode()          {}

// NewVariableExpr constructs a variable reference node.
func NewVariableExpr(name *Ident, span lexer.Span) *VariableExpr {
	return &VariableExpr{Name: name, span: span}
}

// UnaryExpr is a prefix unary operator applied to one operand, e.g.
// `fei1 x`, `qu3zhi3 x`, `chang2du4 x`.
type UnaryExpr struct {
	Op      string
	Operand Expr
	span    lexer.Span
}

func (e *UnaryExpr) Span() lexer.Span { return e.span }
func (*UnaryExpr) exprNode()          {}

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(op string, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

// BinaryExpr is an infix binary operator applied to two operands.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	span  lexer.Span
}

func (e *BinaryExpr) Span() lexer.Span { return e.span }
func (*BinaryExpr) exprNode()          {}

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op string, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

// CastExpr is `zhuan3 ty value`: an explicit declare-graph pin rather than
// an inferred one.
type CastExpr struct {
	Type  TypeExpr
	Value Expr
	span  lexer.Span
}

func (e *CastExpr) Span() lexer.Span { return e.span }
func (*CastExpr) exprNode()          {}

// NewCastExpr constructs a cast expression node.
func NewCastExpr(typ TypeExpr, value Expr, span lexer.Span) *CastExpr {
	return &CastExpr{Type: typ, Value: value, span: span}
}

// CallExpr is `ya1 args* ru4 name`: arguments precede the callee name,
// bracketed by the call-open/call-close keywords.
type CallExpr struct {
	Name *Ident
	Args []Expr
	span lexer.Span
}

func (e *CallExpr) Span() lexer.Span { return e.span }
func (*CallExpr) exprNode()          {}

// NewCallExpr constructs a call expression node.
func NewCallExpr(name *Ident, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{Name: name, Args: args, span: span}
}

// PrimitiveTypeExpr is a `zheng3`/`fu2`-rooted type expression, optionally
// decorated with width/sign/array/ref/pointer/const.
type PrimitiveTypeExpr struct {
	Base       string // keyword.BaseInteger or keyword.BaseFloat
	Width      int    // 0 means "default for Base"
	Signed     *bool  // nil means "default (signed) for Base"
	Decorators []Decorator
	span       lexer.Span
}

func (t *PrimitiveTypeExpr) Span() lexer.Span { return t.span }
func (*PrimitiveTypeExpr) typeNode()          {}

// NewPrimitiveTypeExpr constructs a primitive type expression node.
func NewPrimitiveTypeExpr(base string, width int, signed *bool, decorators []Decorator, span lexer.Span) *PrimitiveTypeExpr {
	return &PrimitiveTypeExpr{Base: base, Width: width, Signed: signed, Decorators: decorators, span: span}
}

// ComplexTypeExpr is any type name other than zheng3/fu2: a user-defined or
// externally-known type, optionally decorated.
type ComplexTypeExpr struct {
	Name       *Ident
	Decorators []Decorator
	span       lexer.Span
}

func (t *ComplexTypeExpr) Span() lexer.Span { return t.span }
func (*ComplexTypeExpr) typeNode()          {}

// NewComplexTypeExpr constructs a complex type expression node.
func NewComplexTypeExpr(name *Ident, decorators []Decorator, span lexer.Span) *ComplexTypeExpr {
	return &ComplexTypeExpr{Name: name, Decorators: decorators, span: span}
}

// DecoratorKind classifies a type decorator keyword.
type DecoratorKind int

const (
	DecoratorKindConst DecoratorKind = iota
	DecoratorKindArray
	DecoratorKindRef
	DecoratorKindPointer
)

// Decorator is one `she4`/`zu3 N`/`yin3`/`zhi3` prefix applied to a type
// expression, left-to-right outermost-first as written.
type Decorator struct {
	Kind DecoratorKind
	N    int // array length; unused otherwise
}
