package wasmgen

import (
	"strconv"

	"wcc/internal/ast"
	"wcc/internal/ctypes"
)

// dropValue discards an expression result left on the operand stack, if the
// expression produced one.
func (e *funcEmitter) dropValue(ty *ctypes.Type) {
	if ty == nil || ty.Kind == ctypes.KindVoid {
		return
	}
	e.emit("(drop)")
}

// condValue turns the value on top of the stack into an i32 truth operand
// for if or br_if. An i32 is already usable as is.
func (e *funcEmitter) condValue(ty *ctypes.Type) {
	switch valTypeOf(ty) {
	case i64:
		e.emit("(i64.const 0)")
		e.emit("(i64.ne)")
	case f32:
		e.emit("(f32.const 0)")
		e.emit("(f32.ne)")
	case f64:
		e.emit("(f64.const 0)")
		e.emit("(f64.ne)")
	}
}

// boolValue normalizes the value on top of the stack to an i32 0 or 1.
func (e *funcEmitter) boolValue(ty *ctypes.Type) {
	switch valTypeOf(ty) {
	case i32:
		e.emit("(i32.const 0)")
		e.emit("(i32.ne)")
	case i64:
		e.emit("(i64.const 0)")
		e.emit("(i64.ne)")
	case f32:
		e.emit("(f32.const 0)")
		e.emit("(f32.ne)")
	case f64:
		e.emit("(f64.const 0)")
		e.emit("(f64.ne)")
	}
}

func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// genExpr lowers an expression, leaving its value on the operand stack.
// Void-typed expressions leave nothing.
func (e *funcEmitter) genExpr(node *ast.Node) error {
	switch node.Kind {
	case ast.KindNullExpr:
		return nil

	case ast.KindNum:
		switch valTypeOf(node.Ty) {
		case f32:
			e.emitf("(f32.const %s)", formatFloat(node.FVal, 32))
		case f64:
			e.emitf("(f64.const %s)", formatFloat(node.FVal, 64))
		case i64:
			e.emitf("(i64.const %d)", node.Val)
		default:
			e.emitf("(i32.const %d)", int32(node.Val))
		}
		return nil

	case ast.KindVar, ast.KindMember:
		if err := e.genAddr(node); err != nil {
			return err
		}
		if load := loadInstr(node.Ty); load != "" {
			e.emit(load)
		}
		return nil

	case ast.KindAddr:
		return e.genAddr(node.Lhs)

	case ast.KindDeref:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		if load := loadInstr(node.Ty); load != "" {
			e.emit(load)
		}
		return nil

	case ast.KindNeg:
		vt := valTypeOf(node.Ty)
		switch vt {
		case f32, f64:
			if err := e.genExpr(node.Lhs); err != nil {
				return err
			}
			e.emitf("(%s.neg)", vt)
		default:
			e.emitf("(%s.const 0)", vt)
			if err := e.genExpr(node.Lhs); err != nil {
				return err
			}
			e.emitf("(%s.sub)", vt)
		}
		return nil

	case ast.KindNot:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		switch valTypeOf(node.Lhs.Ty) {
		case i64:
			e.emit("(i64.eqz)")
		case f32:
			e.emit("(f32.const 0)")
			e.emit("(f32.eq)")
		case f64:
			e.emit("(f64.const 0)")
			e.emit("(f64.eq)")
		default:
			e.emit("(i32.eqz)")
		}
		return nil

	case ast.KindBitNot:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		vt := valTypeOf(node.Ty)
		e.emitf("(%s.const -1)", vt)
		e.emitf("(%s.xor)", vt)
		return nil

	case ast.KindAssign:
		return e.genAssign(node)

	case ast.KindComma:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		e.dropValue(node.Lhs.Ty)
		return e.genExpr(node.Rhs)

	case ast.KindCast:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		e.genCast(node.Lhs.Ty, node.Ty)
		return nil

	case ast.KindCond:
		return e.genCond(node)

	case ast.KindLogAnd:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		e.condValue(node.Lhs.Ty)
		e.emit("(if (result i32)")
		e.indent++
		e.emit("(then")
		e.indent++
		if err := e.genExpr(node.Rhs); err != nil {
			return err
		}
		e.boolValue(node.Rhs.Ty)
		e.indent--
		e.emit(")")
		e.emit("(else")
		e.indent++
		e.emit("(i32.const 0)")
		e.indent--
		e.emit(")")
		e.indent--
		e.emit(")")
		return nil

	case ast.KindLogOr:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		e.condValue(node.Lhs.Ty)
		e.emit("(if (result i32)")
		e.indent++
		e.emit("(then")
		e.indent++
		e.emit("(i32.const 1)")
		e.indent--
		e.emit(")")
		e.emit("(else")
		e.indent++
		if err := e.genExpr(node.Rhs); err != nil {
			return err
		}
		e.boolValue(node.Rhs.Ty)
		e.indent--
		e.emit(")")
		e.indent--
		e.emit(")")
		return nil

	case ast.KindFuncall:
		return e.genFuncall(node)

	case ast.KindStmtExpr:
		return e.genStmtExpr(node)

	case ast.KindMemzero:
		v := node.Obj
		e.emitf("(i32.add (local.get $__bp) (i32.const %d))", e.layout.Offset(v))
		e.emit("(i32.const 0)")
		e.emitf("(i32.const %d)", v.Ty.Size)
		e.emit("(memory.fill)")
		return nil

	case ast.KindAdd, ast.KindSub, ast.KindMul, ast.KindDiv, ast.KindMod,
		ast.KindBitAnd, ast.KindBitOr, ast.KindBitXor, ast.KindShl, ast.KindShr:
		return e.genBinary(node)

	case ast.KindEq, ast.KindNe, ast.KindLt, ast.KindLe:
		return e.genCompare(node)
	}
	return errUnsupported(node.Span, "unsupported expression")
}

// genAssign stores the right-hand value through the left-hand address and
// leaves the assigned value on the stack. The value is parked in a scratch
// local across the store; nested assignments get distinct slots.
func (e *funcEmitter) genAssign(node *ast.Node) error {
	if node.Ty.IsAggregate() {
		if err := e.genAddr(node.Lhs); err != nil {
			return err
		}
		tmp := e.acquireScratch(i32)
		e.emitf("(local.tee %s)", tmp)
		if err := e.genExpr(node.Rhs); err != nil {
			return err
		}
		e.emitf("(i32.const %d)", node.Ty.Size)
		e.emit("(memory.copy)")
		e.emitf("(local.get %s)", tmp)
		e.releaseScratch(i32)
		return nil
	}

	if err := e.genAddr(node.Lhs); err != nil {
		return err
	}
	if err := e.genExpr(node.Rhs); err != nil {
		return err
	}
	vt := valTypeOf(node.Ty)
	tmp := e.acquireScratch(vt)
	e.emitf("(local.tee %s)", tmp)
	for _, ins := range storeInstr(node.Ty) {
		e.emit(ins)
	}
	e.emitf("(local.get %s)", tmp)
	e.releaseScratch(vt)
	return nil
}

// genCast converts the value on top of the stack from one scalar type to
// another. A conversion to _Bool normalizes to 0 or 1; a narrowing integer
// conversion masks or sign-extends within i32.
func (e *funcEmitter) genCast(from, to *ctypes.Type) {
	if to.Kind == ctypes.KindVoid {
		e.dropValue(from)
		return
	}
	if to.Kind == ctypes.KindBool {
		e.boolValue(from)
		return
	}

	fromVT := valTypeOf(from)
	toVT := valTypeOf(to)
	if fromVT != toVT {
		switch {
		case fromVT == i32 && toVT == i64:
			if from.Unsigned {
				e.emit("(i64.extend_i32_u)")
			} else {
				e.emit("(i64.extend_i32_s)")
			}
		case fromVT == i64 && toVT == i32:
			e.emit("(i32.wrap_i64)")
		case fromVT == i32 && (toVT == f32 || toVT == f64):
			if from.Unsigned {
				e.emitf("(%s.convert_i32_u)", toVT)
			} else {
				e.emitf("(%s.convert_i32_s)", toVT)
			}
		case fromVT == i64 && (toVT == f32 || toVT == f64):
			if from.Unsigned {
				e.emitf("(%s.convert_i64_u)", toVT)
			} else {
				e.emitf("(%s.convert_i64_s)", toVT)
			}
		case (fromVT == f32 || fromVT == f64) && toVT == i32:
			if to.Unsigned {
				e.emitf("(i32.trunc_%s_u)", fromVT)
			} else {
				e.emitf("(i32.trunc_%s_s)", fromVT)
			}
		case (fromVT == f32 || fromVT == f64) && toVT == i64:
			if to.Unsigned {
				e.emitf("(i64.trunc_%s_u)", fromVT)
			} else {
				e.emitf("(i64.trunc_%s_s)", fromVT)
			}
		case fromVT == f32 && toVT == f64:
			e.emit("(f64.promote_f32)")
		case fromVT == f64 && toVT == f32:
			e.emit("(f32.demote_f64)")
		}
	}

	// Narrowing to a sub-word integer keeps only the low bits so the i32
	// holds the value the next load would produce.
	if toVT == i32 && to.IsInteger() {
		switch sizeOf(to) {
		case 1:
			if to.Unsigned {
				e.emit("(i32.const 255)")
				e.emit("(i32.and)")
			} else {
				e.emit("(i32.extend8_s)")
			}
		case 2:
			if to.Unsigned {
				e.emit("(i32.const 65535)")
				e.emit("(i32.and)")
			} else {
				e.emit("(i32.extend16_s)")
			}
		}
	}
}

func (e *funcEmitter) genCond(node *ast.Node) error {
	if err := e.genExpr(node.Cond); err != nil {
		return err
	}
	e.condValue(node.Cond.Ty)

	hasResult := node.Ty != nil && node.Ty.Kind != ctypes.KindVoid
	if hasResult {
		e.emitf("(if (result %s)", valTypeOf(node.Ty))
	} else {
		e.emit("(if")
	}
	e.indent++
	e.emit("(then")
	e.indent++
	if err := e.genExpr(node.Then); err != nil {
		return err
	}
	e.indent--
	e.emit(")")
	e.emit("(else")
	e.indent++
	if node.Els != nil {
		if err := e.genExpr(node.Els); err != nil {
			return err
		}
	} else if hasResult {
		e.emitf("(%s.const 0)", valTypeOf(node.Ty))
	}
	e.indent--
	e.emit(")")
	e.indent--
	e.emit(")")
	return nil
}

func (e *funcEmitter) genFuncall(node *ast.Node) error {
	callee := node.Lhs
	if callee.Kind != ast.KindVar || !callee.Obj.IsFunction {
		return errUnsupported(node.Span, "indirect function call")
	}
	for _, arg := range node.Args {
		if err := e.genExpr(arg); err != nil {
			return err
		}
	}
	e.emitf("(call $%s)", callee.Obj.Name)
	return nil
}

// genStmtExpr lowers a statement expression. The value of the final
// expression statement is the value of the whole construct.
func (e *funcEmitter) genStmtExpr(node *ast.Node) error {
	for i, stmt := range node.Body {
		if i == len(node.Body)-1 && stmt.Kind == ast.KindExprStmt {
			return e.genExpr(stmt.Lhs)
		}
		if err := e.genStmt(stmt); err != nil {
			return err
		}
	}
	if node.Ty != nil && node.Ty.Kind != ctypes.KindVoid {
		e.emitf("(%s.const 0)", valTypeOf(node.Ty))
	}
	return nil
}

func (e *funcEmitter) genBinary(node *ast.Node) error {
	if err := e.genExpr(node.Lhs); err != nil {
		return err
	}
	if err := e.genExpr(node.Rhs); err != nil {
		return err
	}

	vt := valTypeOf(node.Ty)
	isFloat := vt == f32 || vt == f64
	unsigned := node.Lhs.Ty != nil && node.Lhs.Ty.Unsigned

	switch node.Kind {
	case ast.KindAdd:
		e.emitf("(%s.add)", vt)
	case ast.KindSub:
		e.emitf("(%s.sub)", vt)
	case ast.KindMul:
		e.emitf("(%s.mul)", vt)
	case ast.KindDiv:
		switch {
		case isFloat:
			e.emitf("(%s.div)", vt)
		case unsigned:
			e.emitf("(%s.div_u)", vt)
		default:
			e.emitf("(%s.div_s)", vt)
		}
	case ast.KindMod:
		if unsigned {
			e.emitf("(%s.rem_u)", vt)
		} else {
			e.emitf("(%s.rem_s)", vt)
		}
	case ast.KindBitAnd:
		e.emitf("(%s.and)", vt)
	case ast.KindBitOr:
		e.emitf("(%s.or)", vt)
	case ast.KindBitXor:
		e.emitf("(%s.xor)", vt)
	case ast.KindShl:
		e.emitf("(%s.shl)", vt)
	case ast.KindShr:
		if unsigned {
			e.emitf("(%s.shr_u)", vt)
		} else {
			e.emitf("(%s.shr_s)", vt)
		}
	}
	return nil
}

// genCompare lowers a comparison. The instruction follows the left operand's
// value type and signedness; the result is always an i32.
func (e *funcEmitter) genCompare(node *ast.Node) error {
	if err := e.genExpr(node.Lhs); err != nil {
		return err
	}
	if err := e.genExpr(node.Rhs); err != nil {
		return err
	}

	vt := valTypeOf(node.Lhs.Ty)
	isFloat := vt == f32 || vt == f64
	unsigned := node.Lhs.Ty != nil && node.Lhs.Ty.Unsigned

	switch node.Kind {
	case ast.KindEq:
		e.emitf("(%s.eq)", vt)
	case ast.KindNe:
		e.emitf("(%s.ne)", vt)
	case ast.KindLt:
		switch {
		case isFloat:
			e.emitf("(%s.lt)", vt)
		case unsigned:
			e.emitf("(%s.lt_u)", vt)
		default:
			e.emitf("(%s.lt_s)", vt)
		}
	case ast.KindLe:
		switch {
		case isFloat:
			e.emitf("(%s.le)", vt)
		case unsigned:
			e.emitf("(%s.le_u)", vt)
		default:
			e.emitf("(%s.le_s)", vt)
		}
	}
	return nil
}
