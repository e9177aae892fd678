package wasmgen

import (
	"fmt"

	"wcc/internal/ctypes"
)

// valType is one of the four wasm value types an expression result can
// occupy on the operand stack.
type valType string

const (
	i32 valType = "i32"
	i64 valType = "i64"
	f32 valType = "f32"
	f64 valType = "f64"
)

// valTypeOf maps a C type to its wasm value type. Pointers, enums, bools,
// sub-word integers and all aggregate references are i32 addresses or
// 32-bit scalars; long is i64, matching its 8-byte layout.
func valTypeOf(ty *ctypes.Type) valType {
	if ty == nil {
		return i32
	}
	switch ty.Kind {
	case ctypes.KindFloat:
		return f32
	case ctypes.KindDouble, ctypes.KindLDouble:
		return f64
	case ctypes.KindLong:
		return i64
	default:
		return i32
	}
}

// sizeOf is the physical size of a scalar in linear memory. Pointers and
// function references are 4 bytes in wasm32; everything else keeps the
// type's own size.
func sizeOf(ty *ctypes.Type) int64 {
	if ty == nil {
		return 4
	}
	if ty.Kind == ctypes.KindPtr || ty.Kind == ctypes.KindFunc {
		return 4
	}
	return ty.Size
}

// loadInstr returns the typed load for reading a value of ty from an address
// on the stack, or "" when the address itself is the value (aggregates and
// function references).
func loadInstr(ty *ctypes.Type) string {
	if ty == nil {
		return ""
	}
	if ty.IsAggregate() {
		return ""
	}
	switch valTypeOf(ty) {
	case f32:
		return "(f32.load)"
	case f64:
		return "(f64.load)"
	case i64:
		return "(i64.load)"
	}
	switch sizeOf(ty) {
	case 1:
		if ty.Unsigned {
			return "(i32.load8_u)"
		}
		return "(i32.load8_s)"
	case 2:
		if ty.Unsigned {
			return "(i32.load16_u)"
		}
		return "(i32.load16_s)"
	default:
		return "(i32.load)"
	}
}

// storeInstr returns the typed store consuming [addr value] from the stack.
// Aggregate stores are byte copies: the value operand is the source address
// and the instruction pair copies Size bytes.
func storeInstr(ty *ctypes.Type) []string {
	if ty == nil {
		return nil
	}
	switch ty.Kind {
	case ctypes.KindStruct, ctypes.KindUnion, ctypes.KindArray:
		return []string{
			fmt.Sprintf("(i32.const %d)", ty.Size),
			"(memory.copy)",
		}
	}
	switch valTypeOf(ty) {
	case f32:
		return []string{"(f32.store)"}
	case f64:
		return []string{"(f64.store)"}
	case i64:
		return []string{"(i64.store)"}
	}
	switch sizeOf(ty) {
	case 1:
		return []string{"(i32.store8)"}
	case 2:
		return []string{"(i32.store16)"}
	default:
		return []string{"(i32.store)"}
	}
}
