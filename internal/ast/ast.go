// Package ast is the program graph handed to the code generator by a front
// end: definitions, typed expression and statement nodes. One Node struct
// with a kind tag covers every construct; only the children a kind needs are
// populated.
package ast

import "wcc/internal/ctypes"

type NodeKind int

const (
	KindNullExpr NodeKind = iota // placeholder with no effect
	KindNum                      // integer or floating literal
	KindVar                      // variable reference
	KindMember                   // . (struct/union member access)
	KindAddr                     // unary &
	KindDeref                    // unary *
	KindNeg                      // unary -
	KindNot                      // !
	KindBitNot                   // ~
	KindAssign                   // =
	KindComma                    // ,
	KindCast                     // type cast
	KindCond                     // ?:
	KindLogAnd                   // &&
	KindLogOr                    // ||
	KindFuncall                  // function call
	KindStmtExpr                 // GNU statement expression
	KindMemzero                  // zero-clear a local variable
	KindAdd                      // +
	KindSub                      // -
	KindMul                      // *
	KindDiv                      // /
	KindMod                      // %
	KindBitAnd                   // &
	KindBitOr                    // |
	KindBitXor                   // ^
	KindShl                      // <<
	KindShr                      // >>
	KindEq                       // ==
	KindNe                       // !=
	KindLt                       // <
	KindLe                       // <=
	KindReturn                   // "return"
	KindExprStmt                 // expression statement
	KindBlock                    // { ... }
	KindIf                       // "if"
	KindFor                      // "for" or "while"
	KindDo                       // "do"
	KindSwitch                   // "switch"
	KindCase                     // "case" or "default" label
	KindGoto                     // "goto"
	KindLabel                    // labeled statement
)

type Position struct {
	Line int
	Col  int
}

type Span struct {
	Start Position
	End   Position
}

type Node struct {
	Kind NodeKind
	Ty   *ctypes.Type
	Span Span

	Lhs *Node
	Rhs *Node

	Cond *Node
	Then *Node
	Els  *Node
	Init *Node
	Inc  *Node

	// Break and continue targets pre-assigned by the front end.
	BrkLabel  string
	ContLabel string

	// Block or statement-expression body.
	Body []*Node

	// Member access.
	Member *ctypes.Member

	// Function call arguments; Lhs is the callee expression.
	Args []*Node

	// Goto or labeled statement.
	Label       string
	UniqueLabel string

	// Switch: case nodes in source order plus the optional default.
	Cases   []*Node
	Default *Node

	// Case value range (Begin == End for a single value).
	Begin int64
	End   int64

	// Variable reference or memzero target.
	Obj *Obj

	// Literal payload.
	Val  int64
	FVal float64
}

func NewNode(kind NodeKind, span Span) *Node {
	return &Node{Kind: kind, Span: span}
}

func NewNum(val int64, ty *ctypes.Type, span Span) *Node {
	return &Node{Kind: KindNum, Val: val, Ty: ty, Span: span}
}

func NewFloat(fval float64, ty *ctypes.Type, span Span) *Node {
	return &Node{Kind: KindNum, FVal: fval, Ty: ty, Span: span}
}

func NewVarRef(obj *Obj, span Span) *Node {
	return &Node{Kind: KindVar, Obj: obj, Ty: obj.Ty, Span: span}
}

func NewBinary(kind NodeKind, lhs, rhs *Node, ty *ctypes.Type, span Span) *Node {
	return &Node{Kind: kind, Lhs: lhs, Rhs: rhs, Ty: ty, Span: span}
}

func NewUnary(kind NodeKind, expr *Node, ty *ctypes.Type, span Span) *Node {
	return &Node{Kind: kind, Lhs: expr, Ty: ty, Span: span}
}

func NewCast(expr *Node, ty *ctypes.Type) *Node {
	return &Node{Kind: KindCast, Lhs: expr, Ty: ty, Span: expr.Span}
}

func NewBlock(stmts []*Node, span Span) *Node {
	return &Node{Kind: KindBlock, Body: stmts, Span: span}
}

func NewExprStmt(expr *Node, span Span) *Node {
	return &Node{Kind: KindExprStmt, Lhs: expr, Span: span}
}
