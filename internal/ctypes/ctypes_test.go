package ctypes

import "testing"

func TestAlignTo(t *testing.T) {
	cases := []struct {
		n, align, want int64
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{17, 16, 32},
		{7, 1, 7},
	}
	for _, c := range cases {
		if got := AlignTo(c.n, c.align); got != c.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", c.n, c.align, got, c.want)
		}
	}
}

func TestBasicSizes(t *testing.T) {
	cases := []struct {
		ty   *Type
		size int64
	}{
		{Char, 1},
		{Short, 2},
		{Int, 4},
		{Long, 8},
		{ULong, 8},
		{Float, 4},
		{Double, 8},
	}
	for _, c := range cases {
		if c.ty.Size != c.size {
			t.Errorf("size of kind %v = %d, want %d", c.ty.Kind, c.ty.Size, c.size)
		}
		if c.ty.Align != c.size {
			t.Errorf("align of kind %v = %d, want %d", c.ty.Kind, c.ty.Align, c.size)
		}
	}
}

func TestPointerTo(t *testing.T) {
	p := PointerTo(Long)
	if p.Size != 4 || p.Align != 4 {
		t.Errorf("pointer size/align = %d/%d, want 4/4", p.Size, p.Align)
	}
	if !p.Unsigned {
		t.Error("pointer should compare unsigned")
	}
	if p.Base != Long {
		t.Error("pointer base lost")
	}
}

func TestStructLayout(t *testing.T) {
	// struct { char a; int b; char c; }
	st := StructOf(
		&Member{Name: "a", Ty: Char},
		&Member{Name: "b", Ty: Int},
		&Member{Name: "c", Ty: Char},
	)
	if st.Members[0].Offset != 0 {
		t.Errorf("a at %d, want 0", st.Members[0].Offset)
	}
	if st.Members[1].Offset != 4 {
		t.Errorf("b at %d, want 4", st.Members[1].Offset)
	}
	if st.Members[2].Offset != 8 {
		t.Errorf("c at %d, want 8", st.Members[2].Offset)
	}
	if st.Size != 12 {
		t.Errorf("size = %d, want 12", st.Size)
	}
	if st.Align != 4 {
		t.Errorf("align = %d, want 4", st.Align)
	}
}

func TestUnionLayout(t *testing.T) {
	u := UnionOf(
		&Member{Name: "i", Ty: Int},
		&Member{Name: "l", Ty: Long},
		&Member{Name: "c", Ty: Char},
	)
	for _, m := range u.Members {
		if m.Offset != 0 {
			t.Errorf("member %s at %d, want 0", m.Name, m.Offset)
		}
	}
	if u.Size != 8 || u.Align != 8 {
		t.Errorf("size/align = %d/%d, want 8/8", u.Size, u.Align)
	}
}

func TestArrayOf(t *testing.T) {
	a := ArrayOf(Int, 10)
	if a.Size != 40 {
		t.Errorf("size = %d, want 40", a.Size)
	}
	if a.Align != 4 {
		t.Errorf("align = %d, want 4", a.Align)
	}
	if !a.IsAggregate() {
		t.Error("array should be an aggregate")
	}
}

func TestPredicates(t *testing.T) {
	if !Int.IsInteger() || !Bool.IsInteger() || !ULong.IsInteger() {
		t.Error("integer predicate too narrow")
	}
	if Float.IsInteger() || PointerTo(Int).IsInteger() {
		t.Error("integer predicate too wide")
	}
	if !Float.IsFloat() || !Double.IsFloat() {
		t.Error("float predicate too narrow")
	}
	if Int.IsFloat() {
		t.Error("float predicate too wide")
	}
}
