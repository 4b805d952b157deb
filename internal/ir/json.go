package ir

// Item is one top-level IR node. Only function definitions exist at file
// scope in this language, but the tagged-union shape (one populated
// pointer field, the rest omitted) leaves room for the kind spec.md's
// original_source companion hints other item kinds might someday use
// without reshaping every existing Item.
type Item struct {
	FnDefine *FnDefine `json:"FnDefine,omitempty"`
}

// Param is one resolved function parameter.
type Param struct {
	Type TypeDefine `json:"type"`
	Name string     `json:"name"`
}

// FnDefine is a fully-typed function: every declare-graph group in its
// body has been solved to one concrete branch.
type FnDefine struct {
	Type   TypeDefine `json:"type"`
	Name   string     `json:"name"`
	Params []Param    `json:"params"`
	Body   Statements `json:"body"`
}

// Statements is a block of lowered statements, tagged with whether
// control flow reaching the end of the block is known to have already
// returned (every branch of a trailing If, or a trailing Return itself).
type Statements struct {
	Stmts    []Statement `json:"stmts"`
	Returned bool        `json:"returned"`
}

// Statement is a tagged union over every statement kind the IR carries;
// VarDefine introduces a temporary when lowering a nested call/operate
// expression's intermediate result, same as any source-level variable.
type Statement struct {
	VarDefine *VarDefineNode `json:"VarDefine,omitempty"`
	VarStore  *VarStoreNode  `json:"VarStore,omitempty"`
	If        *IfNode        `json:"If,omitempty"`
	While     *WhileNode     `json:"While,omitempty"`
	Return    *ReturnNode    `json:"Return,omitempty"`
	Expr      *AssignValue   `json:"Expr,omitempty"`
}

type VarDefineNode struct {
	Type  TypeDefine  `json:"type"`
	Name  string      `json:"name"`
	Value AssignValue `json:"value"`
}

type VarStoreNode struct {
	Name  string      `json:"name"`
	Value AssignValue `json:"value"`
}

type IfClauseNode struct {
	Cond Statements `json:"cond"`
	Body Statements `json:"body"`
}

type IfNode struct {
	Clauses []IfClauseNode `json:"clauses"`
	Else    *Statements    `json:"else,omitempty"`
}

type WhileNode struct {
	Cond Statements `json:"cond"`
	Body Statements `json:"body"`
}

type ReturnNode struct {
	Value *AssignValue `json:"value,omitempty"`
}

// AssignValue is the right-hand side of any statement that produces a
// value: a bare value, a function call, or an operator application.
// Operands/args are always bare Values (variables or literals) — nested
// calls/operators are flattened into their own VarDefine temporaries
// before reaching this node, matching three-address-code IR shape.
type AssignValue struct {
	Value   *Value       `json:"Value,omitempty"`
	FnCall  *FnCallNode  `json:"FnCall,omitempty"`
	Operate *OperateNode `json:"Operate,omitempty"`
}

type FnCallNode struct {
	Name string  `json:"name"`
	Args []Value `json:"args"`
}

type OperateNode struct {
	Op          string         `json:"op"`
	PrimitiveTy *PrimitiveType `json:"primitive_ty,omitempty"`
	Operands    []Value        `json:"operands"`
}

// Value is a leaf operand: a variable reference or a literal tagged with
// its resolved primitive type.
type Value struct {
	Variable *string      `json:"Variable,omitempty"`
	Literal  *LiteralNode `json:"Literal,omitempty"`
}

type LiteralNode struct {
	Lit         string        `json:"lit"`
	PrimitiveTy PrimitiveType `json:"primitive_ty"`
}
