// Package keyword holds the romanized-syllable keyword and operator tables
// that back the lexer-agnostic word stream: which words are operators (and
// at what precedence/associativity), which are syntax markers, which are
// control-flow markers, and which are type decorators. These tables are data,
// not algorithm; the parser in internal/parser consumes them.
package keyword

// Associativity describes how a binary operator chains with itself.
type Associativity int

const (
	LeftToRight Associativity = iota
	RightToLeft
)

// OperatorKind classifies what an operator keyword lowers to.
type OperatorKind int

const (
	Arithmetic OperatorKind = iota
	Compare
	Logical
	Bitwise
	Special // addr-of, deref, length-of (prefix unary); get-element, cast (own grammar rules)
)

// Operator describes one operator keyword's parsing metadata. Lower
// Priority binds tighter, matching the table in py-lex's ops.rs.
type Operator struct {
	Keyword string
	Kind    OperatorKind
	Unary   bool
	Assoc   Associativity
	// Priority is meaningless for unary operators, which climb at a fixed
	// tight binding (see UnaryPriority) ahead of any binary operator.
	Priority int
}

// UnaryPriority is the binding power of every prefix unary operator —
// tighter than every binary operator in the table below.
const UnaryPriority = 3

// Operators is the full operator keyword table, grounded on py-lex's
// operators::ops! macro invocation: arithmetic, compare, logical and
// bitwise keywords together with their binding priority.
var Operators = map[string]Operator{
	// arithmetic
	"jia1":   {Keyword: "jia1", Kind: Arithmetic, Assoc: LeftToRight, Priority: 6},
	"jian3":  {Keyword: "jian3", Kind: Arithmetic, Assoc: LeftToRight, Priority: 6},
	"cheng2": {Keyword: "cheng2", Kind: Arithmetic, Assoc: LeftToRight, Priority: 5},
	"chu2":   {Keyword: "chu2", Kind: Arithmetic, Assoc: LeftToRight, Priority: 5},
	"mo2":    {Keyword: "mo2", Kind: Arithmetic, Assoc: LeftToRight, Priority: 5},
	"mi4":    {Keyword: "mi4", Kind: Arithmetic, Assoc: LeftToRight, Priority: 4},
	"dui4":   {Keyword: "dui4", Kind: Arithmetic, Assoc: LeftToRight, Priority: 4},

	// comparisons
	"tong2":      {Keyword: "tong2", Kind: Compare, Assoc: LeftToRight, Priority: 10},
	"fei1tong2":  {Keyword: "fei1tong2", Kind: Compare, Assoc: LeftToRight, Priority: 10},
	"da4":        {Keyword: "da4", Kind: Compare, Assoc: LeftToRight, Priority: 8},
	"xiao3":      {Keyword: "xiao3", Kind: Compare, Assoc: LeftToRight, Priority: 8},
	"da4deng3":   {Keyword: "da4deng3", Kind: Compare, Assoc: LeftToRight, Priority: 8},
	"xiao3deng3": {Keyword: "xiao3deng3", Kind: Compare, Assoc: LeftToRight, Priority: 8},

	// logical
	"yu3":  {Keyword: "yu3", Kind: Logical, Assoc: LeftToRight, Priority: 14},
	"huo4": {Keyword: "huo4", Kind: Logical, Assoc: LeftToRight, Priority: 15},
	"fei1": {Keyword: "fei1", Kind: Logical, Unary: true, Assoc: RightToLeft, Priority: UnaryPriority},

	// bitwise
	"wei4yu3":     {Keyword: "wei4yu3", Kind: Bitwise, Assoc: LeftToRight, Priority: 11},
	"wei4huo4":    {Keyword: "wei4huo4", Kind: Bitwise, Assoc: LeftToRight, Priority: 13},
	"wei4fei1":    {Keyword: "wei4fei1", Kind: Bitwise, Unary: true, Assoc: RightToLeft, Priority: UnaryPriority},
	"wei4yi4huo4": {Keyword: "wei4yi4huo4", Kind: Bitwise, Assoc: LeftToRight, Priority: 12},
	"zuo3yi2":     {Keyword: "zuo3yi2", Kind: Bitwise, Assoc: LeftToRight, Priority: 7},
	"you4yi2":     {Keyword: "you4yi2", Kind: Bitwise, Assoc: LeftToRight, Priority: 7},

	// special unary operators
	"qu3zhi3":  {Keyword: "qu3zhi3", Kind: Special, Unary: true, Assoc: RightToLeft, Priority: UnaryPriority},
	"fang3zhi3": {Keyword: "fang3zhi3", Kind: Special, Unary: true, Assoc: RightToLeft, Priority: UnaryPriority},
	"fang3su4":  {Keyword: "fang3su4", Kind: Special, Unary: false, Assoc: LeftToRight, Priority: 2},
	"zhuan3":    {Keyword: "zhuan3", Kind: Special, Unary: false, Assoc: LeftToRight, Priority: 2},
	"chang2du4": {Keyword: "chang2du4", Kind: Special, Unary: true, Assoc: RightToLeft, Priority: UnaryPriority},
}

// CastKeyword and GetElementKeyword are the two Special-kind operators
// with their own dedicated grammar rule rather than generic infix climbing.
const (
	CastKeyword      = "zhuan3"
	GetElementKeyword = "fang3su4"
)

// IsUnaryPrefix reports whether kw is valid in prefix (unary) position.
func IsUnaryPrefix(kw string) bool {
	op, ok := Operators[kw]
	return ok && op.Unary
}

// IsBinary reports whether kw is valid as an infix binary operator climbed
// by the generic Pratt loop. zhuan3 (cast) and fang3su4 (get-element) are
// Special-kind entries parsed by their own dedicated grammar rule instead,
// since they don't take two same-shape expression operands.
func IsBinary(kw string) bool {
	op, ok := Operators[kw]
	return ok && !op.Unary && op.Kind != Special
}

// Syntax keywords: block/statement punctuation, grounded on py-lex's
// syntax.rs Symbol table.
const (
	BlockOpen    = "han2"  // opens a block / bracketed list
	BlockClose   = "jie2"  // closes a block / bracketed list
	ParamMarker  = "can1"  // opens a function's parameter list
	CommentOpen  = "shi4"  // opens a comment statement
	Semicolon    = "fen1"  // statement separator
	Assign       = "wei2"  // assignment
	GetMember    = "de1"   // field/member access
	Label        = "biao1" // label marker
	CharMarker   = "wen2"  // introduces a char literal
	StringMarker = "chuan4" // introduces a string literal
	Export       = "dao3chu1"
	ArrayMarker  = "zu3" // also a type decorator, see TypeDecorators
	CallOpen     = "ya1" // opens a call's argument list
	CallClose    = "ru4" // closes a call's argument list, followed by the callee name
)

// Control-flow keywords, grounded on py-lex's syntax.rs ControlFlow table.
const (
	If       = "ruo4"
	Else     = "ze2"
	While    = "chong2"
	Switch   = "qie4huan4"
	Jump     = "tiao4"
	Return   = "fan3"
)

// Type decorator keywords, grounded on py-lex's types.rs BasicExtenWord
// table.
const (
	DecoratorArray    = "zu3"
	DecoratorWidth    = "kuan1"
	DecoratorSigned   = "you3fu2"
	DecoratorUnsigned = "wu2fu2"
	DecoratorRef      = "yin3"
	DecoratorConst    = "she4"
	DecoratorPointer  = "zhi3"
)

// Base type names with dedicated grammar (width/sign rules): everything
// else is treated as a complex (user-named) type.
const (
	BaseInteger = "zheng3"
	BaseFloat   = "fu2"
)

// syntaxKeywords, controlFlowKeywords and typeKeywords back Reserved below;
// kept as separate sets (rather than one flat map) to mirror py-lex's own
// per-table KEEPING_KEYWORDS sets, one per module.
var syntaxKeywords = []string{
	BlockOpen, BlockClose, ParamMarker, CommentOpen, Semicolon, Assign,
	GetMember, Label, CharMarker, StringMarker, Export, ArrayMarker,
	CallOpen, CallClose,
}

var controlFlowKeywords = []string{If, Else, While, Switch, Jump, Return}

var typeKeywords = []string{
	DecoratorArray, DecoratorWidth, DecoratorSigned, DecoratorUnsigned,
	DecoratorRef, DecoratorConst, DecoratorPointer, BaseInteger, BaseFloat,
}

// Reserved is the union of every keyword table: operator keywords, syntax
// keywords, control-flow keywords and type keywords. An identifier cannot
// be any of these.
var Reserved = buildReserved()

func buildReserved() map[string]struct{} {
	set := make(map[string]struct{})
	for kw := range Operators {
		set[kw] = struct{}{}
	}
	for _, kw := range syntaxKeywords {
		set[kw] = struct{}{}
	}
	for _, kw := range controlFlowKeywords {
		set[kw] = struct{}{}
	}
	for _, kw := range typeKeywords {
		set[kw] = struct{}{}
	}
	return set
}

// IsReserved reports whether word is a keyword and therefore unusable as an
// identifier.
func IsReserved(word string) bool {
	_, ok := Reserved[word]
	return ok
}
