package wasmgen

import (
	"wcc/internal/ast"
	"wcc/internal/ctypes"
)

const pageSize = 65536

// Layout is the side table of storage assignments computed before any code
// is emitted. Globals get absolute offsets into linear memory; locals and
// parameters get frame-relative offsets; each function gets a frame size.
// Keeping this out of the AST leaves the front end's graph untouched.
type Layout struct {
	offsets map[*ast.Obj]int64
	frames  map[*ast.Obj]int64

	// DataSize is the extent of the global data region, rounded up to 16.
	DataSize int64
	// StackBase is the initial stack pointer: the stack grows downward
	// from here, above the data region, on a 64KiB boundary.
	StackBase int64
}

// Offset returns the assigned offset of a variable: absolute for globals,
// frame-relative for locals and parameters.
func (l *Layout) Offset(v *ast.Obj) int64 {
	return l.offsets[v]
}

// FrameSize returns the 16-byte-rounded frame size of a function.
func (l *Layout) FrameSize(fn *ast.Obj) int64 {
	return l.frames[fn]
}

func alignOf(v *ast.Obj) int64 {
	align := v.Align
	if align == 0 {
		align = v.Ty.Align
	}
	if align <= 0 {
		align = 1
	}
	return align
}

// ComputeLayout assigns storage to every definition: an align-assign-advance
// walk over globals in program order, then the same walk per function over
// its locals (parameters included). It must run before lowering, since
// every address the generated code computes depends on it.
func ComputeLayout(prog *ast.Program, opts Options) (*Layout, error) {
	l := &Layout{
		offsets: map[*ast.Obj]int64{},
		frames:  map[*ast.Obj]int64{},
	}

	// Globals start at address 0 in linear memory.
	var offset int64
	for _, v := range prog.Defs {
		if v.IsFunction {
			continue
		}
		if v.Ty.Kind == ctypes.KindVLA {
			return nil, errUnsupported(ast.Span{}, "variable-length array: %s", v.Name)
		}
		offset = ctypes.AlignTo(offset, alignOf(v))
		l.offsets[v] = offset
		offset += v.Ty.Size
	}
	l.DataSize = ctypes.AlignTo(offset, 16)

	for _, fn := range prog.Defs {
		if !fn.IsFunction || !fn.IsDefinition {
			continue
		}
		var offset int64
		assign := func(v *ast.Obj) error {
			if v.Ty.Kind == ctypes.KindVLA {
				return errUnsupported(ast.Span{}, "variable-length array: %s", v.Name)
			}
			offset = ctypes.AlignTo(offset, alignOf(v))
			l.offsets[v] = offset
			offset += v.Ty.Size
			return nil
		}
		for _, v := range fn.Locals {
			if err := assign(v); err != nil {
				return nil, err
			}
		}
		// Parameters normally appear in Locals; lay out any that do not so
		// taking their address still works.
		for _, p := range fn.Params {
			if _, ok := l.offsets[p]; ok {
				continue
			}
			if err := assign(p); err != nil {
				return nil, err
			}
		}
		l.frames[fn] = ctypes.AlignTo(offset, 16)
	}

	stackBase := ctypes.AlignTo(l.DataSize+opts.StackMargin, pageSize)
	if stackBase < pageSize {
		stackBase = pageSize
	}
	l.StackBase = stackBase
	return l, nil
}

// pages is the linear memory size covering the data region and stack.
func (l *Layout) pages(opts Options) int64 {
	n := l.StackBase / pageSize
	if n < opts.MinPages {
		n = opts.MinPages
	}
	return n
}
