// Package ir defines the final, fully-typed intermediate representation:
// the JSON-serializable shape produced once every declare-graph group has
// been solved to exactly one concrete type, plus the Type values that
// declare-graph branches resolve to. Grounded on py-ir's types.rs/ir.rs,
// reconciled to spec.md's explicit naming list (bool, i8..i128, u8..u128,
// isize, usize, f32, f64) as the one canonical string form — py-ir's own
// types.rs and ir.rs disagree with each other on this point (e.g. ir.rs's
// FromStr maps "i1"->Bool while types.rs's Display prints "bool"); this
// repo follows spec.md since it is the authoritative naming source.
package ir

import "fmt"

// PrimitiveType is one of the fifteen built-in scalar types.
type PrimitiveType string

const (
	Bool PrimitiveType = "bool"
	I8   PrimitiveType = "i8"
	U8   PrimitiveType = "u8"
	I16  PrimitiveType = "i16"
	U16  PrimitiveType = "u16"
	I32  PrimitiveType = "i32"
	U32  PrimitiveType = "u32"
	I64  PrimitiveType = "i64"
	U64  PrimitiveType = "u64"
	I128 PrimitiveType = "i128"
	U128 PrimitiveType = "u128"
	Isize PrimitiveType = "isize"
	Usize PrimitiveType = "usize"
	F32  PrimitiveType = "f32"
	F64  PrimitiveType = "f64"
)

// IntegerPrimitives lists every integer primitive in declaration order,
// used when a literal's declare-graph group is built with one branch per
// candidate integer type (spec.md §4.4 "literal groups").
var IntegerPrimitives = []PrimitiveType{U8, U16, U32, U64, U128, Usize, I8, I16, I32, I64, I128, Isize}

// FloatPrimitives lists every float primitive.
var FloatPrimitives = []PrimitiveType{F32, F64}

// IntegerWidth reports the bit width of an integer primitive's default
// concrete representation (isize/usize are treated as 64-bit for width
// validation purposes, matching a common 64-bit target).
func IntegerWidth(p PrimitiveType) int {
	switch p {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64, Isize, Usize:
		return 64
	case I128, U128:
		return 128
	}
	return 0
}

// IsSigned reports whether p is a signed integer primitive.
func IsSigned(p PrimitiveType) bool {
	switch p {
	case I8, I16, I32, I64, I128, Isize:
		return true
	}
	return false
}

// IsInteger reports whether p is one of the integer primitives.
func IsInteger(p PrimitiveType) bool {
	for _, ip := range IntegerPrimitives {
		if ip == p {
			return true
		}
	}
	return false
}

// IsFloat reports whether p is one of the float primitives.
func IsFloat(p PrimitiveType) bool {
	return p == F32 || p == F64
}

// TypeDecoratorKind mirrors ast.DecoratorKind at the IR layer.
type TypeDecoratorKind int

const (
	DecoratorConst TypeDecoratorKind = iota
	DecoratorArray
	DecoratorReference
	DecoratorPointer
)

// TypeDecorator is one layer of a ComplexType's decoration, serialized as
// a string tag; array decorators carry their length inline ("Array <n>"),
// matching py-ir's TypeDecorators::to_string.
type TypeDecorator struct {
	Kind TypeDecoratorKind
	N    int
}

// String renders a decorator the way py-ir's TypeDecorators Display does.
func (d TypeDecorator) String() string {
	switch d.Kind {
	case DecoratorConst:
		return "Const"
	case DecoratorArray:
		return fmt.Sprintf("Array %d", d.N)
	case DecoratorReference:
		return "Reference"
	case DecoratorPointer:
		return "Pointer"
	default:
		return "Unknown"
	}
}

// ComplexType is a named type (primitive or user-defined) wrapped in zero
// or more decorators, outermost first.
type ComplexType struct {
	Decorators []TypeDecorator
	Name       string // a PrimitiveType's string form, or a user type name
}

// String renders a complex type as "<decorators> <name>", outermost
// decorator first, matching the surface-syntax reading order.
func (t ComplexType) String() string {
	s := ""
	for _, d := range t.Decorators {
		s += d.String() + " "
	}
	return s + t.Name
}

// Type is a fully-resolved type: either a bare primitive or a decorated
// complex type. It is what a solved declare-graph group reduces to.
type Type struct {
	Primitive *PrimitiveType
	Complex   *ComplexType
}

// NewPrimitive wraps a primitive type as a Type.
func NewPrimitive(p PrimitiveType) Type { return Type{Primitive: &p} }

// NewComplex wraps a complex type as a Type.
func NewComplex(c ComplexType) Type { return Type{Complex: &c} }

// String renders the type's textual form, used both for diagnostics and
// as an ingredient of name mangling.
func (t Type) String() string {
	if t.Primitive != nil {
		return string(*t.Primitive)
	}
	if t.Complex != nil {
		return t.Complex.String()
	}
	return "<unknown>"
}

// Equal reports whether two resolved types are identical.
func (t Type) Equal(o Type) bool {
	return t.String() == o.String()
}

// TypeDefine is the top-level type-definition JSON node: either a bare
// primitive or a decorated complex type.
type TypeDefine struct {
	Primitive *PrimitiveType `json:"Primitive,omitempty"`
	Complex   *ComplexTypeJSON `json:"Complex,omitempty"`
}

// ComplexTypeJSON is ComplexType's JSON-facing shape (string-tag decorators).
type ComplexTypeJSON struct {
	Decorators []string `json:"decorators"`
	Ty         string   `json:"ty"`
}

// ToTypeDefine converts a resolved Type into its JSON node.
func ToTypeDefine(t Type) TypeDefine {
	if t.Primitive != nil {
		p := *t.Primitive
		return TypeDefine{Primitive: &p}
	}
	decs := make([]string, len(t.Complex.Decorators))
	for i, d := range t.Complex.Decorators {
		decs[i] = d.String()
	}
	return TypeDefine{Complex: &ComplexTypeJSON{Decorators: decs, Ty: t.Complex.Name}}
}
