package wasmgen

import (
	"wcc/internal/ast"
)

// genAddr pushes the linear-memory address of an lvalue as an i32. Locals
// are frame-relative to $__bp; globals are absolute constants.
func (e *funcEmitter) genAddr(node *ast.Node) error {
	switch node.Kind {
	case ast.KindVar:
		v := node.Obj
		if v.IsFunction {
			return errUnsupported(node.Span, "function used as a value: %s", v.Name)
		}
		if v.IsLocal {
			e.emitf("(i32.add (local.get $__bp) (i32.const %d))", e.layout.Offset(v))
		} else {
			e.emitf("(i32.const %d)", e.layout.Offset(v))
		}
		return nil

	case ast.KindDeref:
		return e.genExpr(node.Lhs)

	case ast.KindComma:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		e.dropValue(node.Lhs.Ty)
		return e.genAddr(node.Rhs)

	case ast.KindMember:
		if err := e.genAddr(node.Lhs); err != nil {
			return err
		}
		if node.Member.Offset != 0 {
			e.emitf("(i32.const %d)", node.Member.Offset)
			e.emit("(i32.add)")
		}
		return nil
	}
	return errInvalidLValue(node)
}
