// Package wasmgen lowers a type-checked C program graph into a WebAssembly
// text module: block-structured control flow, a single linear memory holding
// globals and a downward-growing stack, and explicit stack-pointer
// management in function prologues and epilogues.
package wasmgen

import (
	"bytes"
	"fmt"
	"strings"

	"wcc/internal/ast"
	"wcc/internal/ctypes"
)

type Generator struct {
	opts   Options
	layout *Layout
}

func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate translates the program into a WAT module. It is a pure function
// of its input: the same program always yields byte-identical output.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	layout, err := ComputeLayout(prog, g.opts)
	if err != nil {
		return "", err
	}
	g.layout = layout

	w := &watBuilder{}
	w.line("(module")
	w.indent++
	w.line(fmt.Sprintf("(memory (export \"memory\") %d)", layout.pages(g.opts)))
	w.line(fmt.Sprintf("(global $__sp (mut i32) (i32.const %d))", layout.StackBase))
	g.emitData(w, prog)
	if err := g.emitFunctions(w, prog); err != nil {
		return "", err
	}
	w.indent--
	w.line(")")
	return w.String(), nil
}

// emitData writes one data segment per global with a non-empty initializer.
func (g *Generator) emitData(w *watBuilder, prog *ast.Program) {
	for _, v := range prog.Defs {
		if v.IsFunction || len(v.InitData) == 0 {
			continue
		}
		w.line(fmt.Sprintf("(data (i32.const %d) \"%s\")", g.layout.Offset(v), escapeData(v.InitData)))
	}
}

func (g *Generator) emitFunctions(w *watBuilder, prog *ast.Program) error {
	for _, fn := range prog.Defs {
		if !fn.IsFunction || !fn.IsDefinition || !fn.IsLive {
			continue
		}
		if err := g.emitFunc(w, fn); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitFunc(w *watBuilder, fn *ast.Obj) error {
	e := newFuncEmitter(g, fn)
	if err := e.emitFuncBody(); err != nil {
		return err
	}

	var sig strings.Builder
	sig.WriteString(fmt.Sprintf("(func $%s", fn.Name))
	if fn.Name == g.opts.Entry {
		sig.WriteString(" (export \"_start\")")
	}
	for _, p := range fn.Params {
		sig.WriteString(fmt.Sprintf(" (param $p_%s %s)", p.Name, valTypeOf(p.Ty)))
	}
	if ret := returnType(fn); ret != nil {
		sig.WriteString(fmt.Sprintf(" (result %s)", valTypeOf(ret)))
	}
	w.line(sig.String())
	w.indent++
	w.line("(local $__bp i32)")
	for _, local := range e.locals {
		w.line(fmt.Sprintf("(local %s %s)", local.name, local.typ))
	}
	for _, line := range e.body {
		w.line(line)
	}
	w.indent--
	w.line(")")
	return nil
}

// returnType is the function's result type, or nil for void.
func returnType(fn *ast.Obj) *ctypes.Type {
	ret := fn.Ty.Return
	if ret == nil || ret.Kind == ctypes.KindVoid {
		return nil
	}
	return ret
}

type watBuilder struct {
	sb     strings.Builder
	indent int
}

func (w *watBuilder) line(s string) {
	w.sb.WriteString(strings.Repeat("  ", w.indent))
	w.sb.WriteString(s)
	w.sb.WriteString("\n")
}

func (w *watBuilder) String() string {
	return w.sb.String()
}

// escapeData renders initializer bytes as a WAT data string, escaping
// everything outside printable ASCII.
func escapeData(data []byte) string {
	var buf bytes.Buffer
	for _, b := range data {
		if b >= 0x20 && b <= 0x7e && b != '\\' && b != '"' {
			buf.WriteByte(b)
			continue
		}
		buf.WriteString(fmt.Sprintf("\\%02x", b))
	}
	return buf.String()
}

type localInfo struct {
	name string
	typ  string
}

// funcEmitter is the per-function lowering context: it buffers body lines so
// scratch locals discovered along the way can be declared ahead of the body,
// and tracks the structured labels a branch may legally target.
type funcEmitter struct {
	g      *Generator
	layout *Layout
	fn     *ast.Obj

	body   []string
	indent int

	locals  []localInfo
	scratch map[valType][]string
	inUse   map[valType]int

	// Unique labels of enclosing break/continue constructs, innermost
	// last. A goto resolves against these; anything else is unsupported.
	labels []string

	labelCount int
}

func newFuncEmitter(g *Generator, fn *ast.Obj) *funcEmitter {
	return &funcEmitter{
		g:       g,
		layout:  g.layout,
		fn:      fn,
		scratch: map[valType][]string{},
		inUse:   map[valType]int{},
	}
}

func (e *funcEmitter) emit(line string) {
	e.body = append(e.body, strings.Repeat("  ", e.indent)+line)
}

func (e *funcEmitter) emitf(format string, args ...interface{}) {
	e.emit(fmt.Sprintf(format, args...))
}

// acquireScratch hands out a scratch local of the given value type. Slots
// form a stack per type: a nested acquisition of the same type gets a
// deeper, distinct slot, so nested assignments cannot clobber each other.
func (e *funcEmitter) acquireScratch(vt valType) string {
	depth := e.inUse[vt]
	pool := e.scratch[vt]
	if depth == len(pool) {
		name := fmt.Sprintf("$__tmp_%s_%d", vt, depth)
		pool = append(pool, name)
		e.scratch[vt] = pool
		e.locals = append(e.locals, localInfo{name: name, typ: string(vt)})
	}
	e.inUse[vt] = depth + 1
	return e.scratch[vt][depth]
}

func (e *funcEmitter) releaseScratch(vt valType) {
	e.inUse[vt]--
}

func (e *funcEmitter) pushLabel(label string) {
	e.labels = append(e.labels, label)
}

func (e *funcEmitter) popLabel() {
	e.labels = e.labels[:len(e.labels)-1]
}

func (e *funcEmitter) hasLabel(label string) bool {
	for _, l := range e.labels {
		if l == label {
			return true
		}
	}
	return false
}

// newLabel synthesizes a branch target when the front end did not assign
// one. The counter is per-function, so output stays deterministic.
func (e *funcEmitter) newLabel(stem string) string {
	e.labelCount++
	return fmt.Sprintf(".L.%s.%d", stem, e.labelCount)
}

// emitFuncBody lowers the whole function: prologue, parameter spill, the
// body wrapped in the single return-branch block, a synthesized zero result
// on fallthrough, and the epilogue undoing the prologue's stack adjustment.
func (e *funcEmitter) emitFuncBody() error {
	frame := e.layout.FrameSize(e.fn)

	e.emitf("(global.set $__sp (i32.sub (global.get $__sp) (i32.const %d)))", frame)
	e.emit("(local.set $__bp (global.get $__sp))")

	for _, p := range e.fn.Params {
		e.emitf("(i32.add (local.get $__bp) (i32.const %d))", e.layout.Offset(p))
		e.emitf("(local.get $p_%s)", p.Name)
		for _, ins := range storeInstr(p.Ty) {
			e.emit(ins)
		}
	}

	ret := returnType(e.fn)
	if ret != nil {
		e.emitf("(block $__return (result %s)", valTypeOf(ret))
	} else {
		e.emit("(block $__return")
	}
	e.indent++
	if err := e.genStmt(e.fn.Body); err != nil {
		return err
	}
	if ret != nil {
		e.emitf("(%s.const 0)", valTypeOf(ret))
	}
	e.indent--
	e.emit(")")

	e.emitf("(global.set $__sp (i32.add (local.get $__bp) (i32.const %d)))", frame)
	return nil
}
