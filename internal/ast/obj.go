package ast

import "wcc/internal/ctypes"

// Obj is a top-level or function-scoped definition: a function, global
// variable, parameter or local variable. The code generator reads it but
// never writes to it; computed storage offsets live in the generator's own
// layout table.
type Obj struct {
	Name    string
	Ty      *ctypes.Type
	IsLocal bool
	// Align overrides the type's natural alignment when nonzero.
	Align int64

	IsFunction   bool
	IsDefinition bool
	IsStatic     bool
	IsTentative  bool
	IsTLS        bool

	// IsLive marks a definition as reachable from the program's entry
	// points. Liveness is computed by the front end; dead functions are
	// not emitted.
	IsLive bool

	// Initializer bytes for a global variable, laid out in the variable's
	// memory representation. Empty for zero-initialized globals.
	InitData []byte

	// Function payload. By convention parameters also appear in Locals so
	// they receive frame slots like any other local.
	Params []*Obj
	Locals []*Obj
	Body   *Node
}

// Program is the complete translation unit: top-level definitions in
// declaration order.
type Program struct {
	Defs []*Obj
}

// NewLocal appends a local variable definition to a function.
func (fn *Obj) NewLocal(name string, ty *ctypes.Type) *Obj {
	v := &Obj{Name: name, Ty: ty, IsLocal: true}
	fn.Locals = append(fn.Locals, v)
	return v
}

// NewParam appends a parameter to a function. The parameter is also added
// to Locals so it is assigned a frame slot.
func (fn *Obj) NewParam(name string, ty *ctypes.Type) *Obj {
	p := &Obj{Name: name, Ty: ty, IsLocal: true}
	fn.Params = append(fn.Params, p)
	fn.Locals = append(fn.Locals, p)
	return p
}

// NewFunc returns a live, defined function with the given signature.
func NewFunc(name string, ty *ctypes.Type) *Obj {
	return &Obj{
		Name:         name,
		Ty:           ty,
		IsFunction:   true,
		IsDefinition: true,
		IsLive:       true,
	}
}

// NewGlobal returns a global variable definition.
func NewGlobal(name string, ty *ctypes.Type) *Obj {
	return &Obj{Name: name, Ty: ty, IsDefinition: true, IsLive: true}
}
