package wasmgen

import (
	"testing"

	"wcc/internal/ast"
	"wcc/internal/ctypes"
)

func TestGlobalLayout(t *testing.T) {
	g1 := ast.NewGlobal("g1", ctypes.Char)
	g2 := ast.NewGlobal("g2", ctypes.Int)
	g3 := ast.NewGlobal("g3", ctypes.Long)
	prog := &ast.Program{Defs: []*ast.Obj{g1, g2, g3}}

	l, err := ComputeLayout(prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Offset(g1); got != 0 {
		t.Errorf("g1 at %d, want 0", got)
	}
	if got := l.Offset(g2); got != 4 {
		t.Errorf("g2 at %d, want 4", got)
	}
	if got := l.Offset(g3); got != 8 {
		t.Errorf("g3 at %d, want 8", got)
	}
	if l.DataSize != 16 {
		t.Errorf("DataSize = %d, want 16", l.DataSize)
	}
}

func TestLocalFrameLayout(t *testing.T) {
	fn := ast.NewFunc("main", ctypes.FuncOf(ctypes.Int))
	c := fn.NewLocal("c", ctypes.Char)
	i := fn.NewLocal("i", ctypes.Int)
	fn.Body = ast.NewBlock(nil, ast.Span{})
	prog := &ast.Program{Defs: []*ast.Obj{fn}}

	l, err := ComputeLayout(prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Offset(c); got != 0 {
		t.Errorf("c at %d, want 0", got)
	}
	if got := l.Offset(i); got != 4 {
		t.Errorf("i at %d, want 4", got)
	}
	if got := l.FrameSize(fn); got != 16 {
		t.Errorf("frame = %d, want 16", got)
	}
}

func TestLayoutAlignedAndDisjoint(t *testing.T) {
	types := []*ctypes.Type{
		ctypes.Char, ctypes.Long, ctypes.Short, ctypes.Double,
		ctypes.Int, ctypes.Char, ctypes.ArrayOf(ctypes.Char, 3),
		ctypes.Long, ctypes.Float, ctypes.PointerTo(ctypes.Int),
	}
	fn := ast.NewFunc("f", ctypes.FuncOf(ctypes.Void))
	fn.Body = ast.NewBlock(nil, ast.Span{})
	for i, ty := range types {
		fn.NewLocal(string(rune('a'+i)), ty)
	}
	prog := &ast.Program{Defs: []*ast.Obj{fn}}

	l, err := ComputeLayout(prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	type interval struct{ lo, hi int64 }
	var used []interval
	for _, v := range fn.Locals {
		off := l.Offset(v)
		if off%v.Ty.Align != 0 {
			t.Errorf("%s: offset %d not %d-aligned", v.Name, off, v.Ty.Align)
		}
		for _, iv := range used {
			if off < iv.hi && off+v.Ty.Size > iv.lo {
				t.Errorf("%s: [%d,%d) overlaps [%d,%d)", v.Name, off, off+v.Ty.Size, iv.lo, iv.hi)
			}
		}
		used = append(used, interval{off, off + v.Ty.Size})
		if off+v.Ty.Size > l.FrameSize(fn) {
			t.Errorf("%s: extends past frame size %d", v.Name, l.FrameSize(fn))
		}
	}
}

func TestAlignOverride(t *testing.T) {
	fn := ast.NewFunc("f", ctypes.FuncOf(ctypes.Void))
	fn.NewLocal("a", ctypes.Char)
	b := fn.NewLocal("b", ctypes.Char)
	b.Align = 16
	fn.Body = ast.NewBlock(nil, ast.Span{})
	prog := &ast.Program{Defs: []*ast.Obj{fn}}

	l, err := ComputeLayout(prog, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Offset(b); got != 16 {
		t.Errorf("b at %d, want 16", got)
	}
}

func TestStackBase(t *testing.T) {
	l, err := ComputeLayout(&ast.Program{}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if l.StackBase != 65536 {
		t.Errorf("StackBase = %d, want 65536", l.StackBase)
	}

	big := ast.NewGlobal("big", ctypes.ArrayOf(ctypes.Char, 70000))
	l, err = ComputeLayout(&ast.Program{Defs: []*ast.Obj{big}}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if l.StackBase != 2*65536 {
		t.Errorf("StackBase = %d, want %d", l.StackBase, 2*65536)
	}
}

func TestVLARejected(t *testing.T) {
	g := ast.NewGlobal("v", ctypes.VLAOf(ctypes.Int))
	if _, err := ComputeLayout(&ast.Program{Defs: []*ast.Obj{g}}, DefaultOptions()); err == nil {
		t.Fatal("expected error for global VLA")
	}

	fn := ast.NewFunc("f", ctypes.FuncOf(ctypes.Void))
	fn.NewLocal("v", ctypes.VLAOf(ctypes.Int))
	fn.Body = ast.NewBlock(nil, ast.Span{})
	if _, err := ComputeLayout(&ast.Program{Defs: []*ast.Obj{fn}}, DefaultOptions()); err == nil {
		t.Fatal("expected error for local VLA")
	}
}
