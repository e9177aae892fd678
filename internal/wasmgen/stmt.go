package wasmgen

import (
	"wcc/internal/ast"
)

func (e *funcEmitter) genStmt(node *ast.Node) error {
	switch node.Kind {
	case ast.KindReturn:
		if node.Lhs != nil {
			if err := e.genExpr(node.Lhs); err != nil {
				return err
			}
		}
		e.emit("(br $__return)")
		return nil

	case ast.KindExprStmt:
		if err := e.genExpr(node.Lhs); err != nil {
			return err
		}
		e.dropValue(node.Lhs.Ty)
		return nil

	case ast.KindBlock:
		for _, stmt := range node.Body {
			if err := e.genStmt(stmt); err != nil {
				return err
			}
		}
		return nil

	case ast.KindIf:
		if err := e.genExpr(node.Cond); err != nil {
			return err
		}
		e.condValue(node.Cond.Ty)
		e.emit("(if")
		e.indent++
		e.emit("(then")
		e.indent++
		if err := e.genStmt(node.Then); err != nil {
			return err
		}
		e.indent--
		e.emit(")")
		if node.Els != nil {
			e.emit("(else")
			e.indent++
			if err := e.genStmt(node.Els); err != nil {
				return err
			}
			e.indent--
			e.emit(")")
		}
		e.indent--
		e.emit(")")
		return nil

	case ast.KindFor:
		return e.genFor(node)

	case ast.KindDo:
		return e.genDo(node)

	case ast.KindSwitch:
		return e.genSwitch(node)

	case ast.KindCase, ast.KindLabel:
		return e.genStmt(node.Lhs)

	case ast.KindGoto:
		if !e.hasLabel(node.UniqueLabel) {
			return errUnsupported(node.Span, "goto to a label outside enclosing control flow: %s", node.Label)
		}
		e.emitf("(br $%s)", node.UniqueLabel)
		return nil
	}
	return errUnsupported(node.Span, "unsupported statement")
}

// genFor lowers for and while loops. The condition test sits at the loop
// top; continue branches past the body to the increment, break exits the
// outer block.
func (e *funcEmitter) genFor(node *ast.Node) error {
	if node.Init != nil {
		if err := e.genStmt(node.Init); err != nil {
			return err
		}
	}
	top := e.newLabel("loop")
	e.emitf("(block $%s", node.BrkLabel)
	e.indent++
	e.emitf("(loop $%s", top)
	e.indent++

	if node.Cond != nil {
		if err := e.genExpr(node.Cond); err != nil {
			return err
		}
		e.condValue(node.Cond.Ty)
		e.emit("(i32.eqz)")
		e.emitf("(br_if $%s)", node.BrkLabel)
	}

	e.pushLabel(node.BrkLabel)
	e.pushLabel(node.ContLabel)
	e.emitf("(block $%s", node.ContLabel)
	e.indent++
	if err := e.genStmt(node.Then); err != nil {
		return err
	}
	e.indent--
	e.emit(")")
	e.popLabel()
	e.popLabel()

	if node.Inc != nil {
		if err := e.genExpr(node.Inc); err != nil {
			return err
		}
		e.dropValue(node.Inc.Ty)
	}
	e.emitf("(br $%s)", top)

	e.indent--
	e.emit(")")
	e.indent--
	e.emit(")")
	return nil
}

// genDo lowers a do-while loop: body first, condition at the bottom
// branching back to the loop top.
func (e *funcEmitter) genDo(node *ast.Node) error {
	top := e.newLabel("loop")
	e.emitf("(block $%s", node.BrkLabel)
	e.indent++
	e.emitf("(loop $%s", top)
	e.indent++

	e.pushLabel(node.BrkLabel)
	e.pushLabel(node.ContLabel)
	e.emitf("(block $%s", node.ContLabel)
	e.indent++
	if err := e.genStmt(node.Then); err != nil {
		return err
	}
	e.indent--
	e.emit(")")
	e.popLabel()
	e.popLabel()

	if err := e.genExpr(node.Cond); err != nil {
		return err
	}
	e.condValue(node.Cond.Ty)
	e.emitf("(br_if $%s)", top)

	e.indent--
	e.emit(")")
	e.indent--
	e.emit(")")
	return nil
}

// genSwitch lowers a switch with real fallthrough. Each case label opens a
// nested block; the dispatch sequence compares the scrutinee against every
// case and branches into the matching block, so execution falls from one
// case's statements into the next until a break.
//
// Case labels must sit directly in the switch body. A label buried inside a
// nested statement cannot be expressed as a structured branch target.
func (e *funcEmitter) genSwitch(node *ast.Node) error {
	var stmts []*ast.Node
	if node.Then.Kind == ast.KindBlock {
		stmts = node.Then.Body
	} else {
		stmts = []*ast.Node{node.Then}
	}

	type segment struct {
		caseNode *ast.Node
		label    string
		start    int
	}
	var segs []segment
	topLevel := map[*ast.Node]int{}
	for i, s := range stmts {
		if s.Kind == ast.KindCase {
			topLevel[s] = len(segs)
			segs = append(segs, segment{caseNode: s, label: e.newLabel("case"), start: i})
		}
	}
	for _, c := range node.Cases {
		if _, ok := topLevel[c]; !ok {
			return errUnsupported(c.Span, "case label not directly inside its switch body")
		}
	}
	if node.Default != nil {
		if _, ok := topLevel[node.Default]; !ok {
			return errUnsupported(node.Default.Span, "default label not directly inside its switch body")
		}
	}

	if err := e.genExpr(node.Cond); err != nil {
		return err
	}
	if len(segs) == 0 {
		e.dropValue(node.Cond.Ty)
		return nil
	}

	vt := valTypeOf(node.Cond.Ty)
	unsigned := node.Cond.Ty != nil && node.Cond.Ty.Unsigned
	tmp := e.acquireScratch(vt)
	e.emitf("(local.set %s)", tmp)

	e.emitf("(block $%s", node.BrkLabel)
	e.indent++
	for i := len(segs) - 1; i >= 0; i-- {
		e.emitf("(block $%s", segs[i].label)
		e.indent++
	}

	for _, c := range node.Cases {
		label := segs[topLevel[c]].label
		if c.Begin == c.End {
			e.emitf("(local.get %s)", tmp)
			e.emitf("(%s.const %d)", vt, c.Begin)
			e.emitf("(%s.eq)", vt)
			e.emitf("(br_if $%s)", label)
			continue
		}
		e.emitf("(local.get %s)", tmp)
		e.emitf("(%s.const %d)", vt, c.Begin)
		if unsigned {
			e.emitf("(%s.ge_u)", vt)
		} else {
			e.emitf("(%s.ge_s)", vt)
		}
		e.emitf("(local.get %s)", tmp)
		e.emitf("(%s.const %d)", vt, c.End)
		if unsigned {
			e.emitf("(%s.le_u)", vt)
		} else {
			e.emitf("(%s.le_s)", vt)
		}
		e.emit("(i32.and)")
		e.emitf("(br_if $%s)", label)
	}
	if node.Default != nil {
		e.emitf("(br $%s)", segs[topLevel[node.Default]].label)
	} else {
		e.emitf("(br $%s)", node.BrkLabel)
	}

	e.pushLabel(node.BrkLabel)
	for i, seg := range segs {
		e.indent--
		e.emit(")")
		end := len(stmts)
		if i+1 < len(segs) {
			end = segs[i+1].start
		}
		for j := seg.start; j < end; j++ {
			if err := e.genStmt(stmts[j]); err != nil {
				return err
			}
		}
	}
	e.popLabel()

	e.indent--
	e.emit(")")
	e.releaseScratch(vt)
	return nil
}
