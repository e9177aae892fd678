// Package ctypes models the C type system as seen by the code generator:
// tagged type descriptors carrying physical size and alignment for the
// wasm32 memory model (4-byte pointers, 8-byte long).
package ctypes

type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindLDouble
	KindEnum
	KindPtr
	KindFunc
	KindArray
	KindVLA
	KindStruct
	KindUnion
)

// Member is a struct or union field. Offset is relative to the start of the
// aggregate and is fixed when the aggregate type is built.
type Member struct {
	Name   string
	Ty     *Type
	Index  int
	Offset int64
}

type Type struct {
	Kind     Kind
	Size     int64 // sizeof() value
	Align    int64
	Unsigned bool

	// Pointer or array element type.
	Base *Type

	ArrayLen int64

	// Struct or union fields.
	Members []*Member

	// Function signature.
	Return *Type
	Params []*Type
}

var (
	Void    = &Type{Kind: KindVoid, Size: 1, Align: 1}
	Bool    = &Type{Kind: KindBool, Size: 1, Align: 1, Unsigned: true}
	Char    = &Type{Kind: KindChar, Size: 1, Align: 1}
	UChar   = &Type{Kind: KindChar, Size: 1, Align: 1, Unsigned: true}
	Short   = &Type{Kind: KindShort, Size: 2, Align: 2}
	UShort  = &Type{Kind: KindShort, Size: 2, Align: 2, Unsigned: true}
	Int     = &Type{Kind: KindInt, Size: 4, Align: 4}
	UInt    = &Type{Kind: KindInt, Size: 4, Align: 4, Unsigned: true}
	Long    = &Type{Kind: KindLong, Size: 8, Align: 8}
	ULong   = &Type{Kind: KindLong, Size: 8, Align: 8, Unsigned: true}
	Float   = &Type{Kind: KindFloat, Size: 4, Align: 4}
	Double  = &Type{Kind: KindDouble, Size: 8, Align: 8}
	LDouble = &Type{Kind: KindLDouble, Size: 16, Align: 16}
)

// AlignTo rounds n up to the nearest multiple of align.
func AlignTo(n, align int64) int64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// PointerTo returns a pointer type. Pointers occupy a 4-byte i32 address in
// the wasm32 linear memory regardless of the pointee.
func PointerTo(base *Type) *Type {
	return &Type{Kind: KindPtr, Size: 4, Align: 4, Unsigned: true, Base: base}
}

func ArrayOf(base *Type, length int64) *Type {
	return &Type{
		Kind:     KindArray,
		Size:     base.Size * length,
		Align:    base.Align,
		Base:     base,
		ArrayLen: length,
	}
}

// VLAOf returns a variable-length array type. The code generator rejects
// definitions of this kind; it exists so a front end can represent them.
func VLAOf(base *Type) *Type {
	return &Type{Kind: KindVLA, Size: 4, Align: 4, Base: base}
}

func EnumOf() *Type {
	return &Type{Kind: KindEnum, Size: 4, Align: 4}
}

// FuncOf returns a function type. Function references, like pointers, are
// 4-byte addresses.
func FuncOf(ret *Type, params ...*Type) *Type {
	return &Type{Kind: KindFunc, Size: 4, Align: 4, Return: ret, Params: params}
}

// StructOf lays out the given members in order, assigning each the lowest
// properly aligned offset past its predecessor, and returns the padded
// struct type.
func StructOf(members ...*Member) *Type {
	var offset, align int64 = 0, 1
	for i, m := range members {
		offset = AlignTo(offset, m.Ty.Align)
		m.Index = i
		m.Offset = offset
		offset += m.Ty.Size
		if m.Ty.Align > align {
			align = m.Ty.Align
		}
	}
	return &Type{
		Kind:    KindStruct,
		Size:    AlignTo(offset, align),
		Align:   align,
		Members: members,
	}
}

// UnionOf overlays the given members at offset zero.
func UnionOf(members ...*Member) *Type {
	var size, align int64 = 0, 1
	for i, m := range members {
		m.Index = i
		m.Offset = 0
		if m.Ty.Size > size {
			size = m.Ty.Size
		}
		if m.Ty.Align > align {
			align = m.Ty.Align
		}
	}
	return &Type{
		Kind:    KindUnion,
		Size:    AlignTo(size, align),
		Align:   align,
		Members: members,
	}
}

// IsInteger reports whether the type holds an integer value, including bool,
// char and enum.
func (t *Type) IsInteger() bool {
	switch t.Kind {
	case KindBool, KindChar, KindShort, KindInt, KindLong, KindEnum:
		return true
	}
	return false
}

func (t *Type) IsFloat() bool {
	switch t.Kind {
	case KindFloat, KindDouble, KindLDouble:
		return true
	}
	return false
}

// IsAggregate reports whether values of the type live in memory and are
// referred to by address rather than loaded into a register slot.
func (t *Type) IsAggregate() bool {
	switch t.Kind {
	case KindStruct, KindUnion, KindArray, KindFunc:
		return true
	}
	return false
}
