package types

import "testing"

func TestPrimitiveMatch(t *testing.T) {
	m := NewManager()

	tests := []struct {
		a, b  SemType
		match bool
	}{
		{m.GetInt(), m.GetInt(), true},
		{m.GetInt(), m.GetChar(), false},
		{m.GetBool(), m.GetBool(), true},
		{m.GetNull(), m.GetInt(), false},
	}

	for _, tt := range tests {
		if got := tt.a.Match(tt.b); got != tt.match {
			t.Errorf("%s.Match(%s) = %v, want %v", tt.a, tt.b, got, tt.match)
		}
	}
}

func TestPrimitiveSize(t *testing.T) {
	m := NewManager()

	tests := []struct {
		typ  SemType
		size int
	}{
		{m.GetInt(), 4},
		{m.GetChar(), 1},
		{m.GetBool(), 1},
		{m.GetNull(), 0},
	}

	for _, tt := range tests {
		if got := tt.typ.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.typ, got, tt.size)
		}
	}
}

func TestArrayMatchIgnoresOpenLength(t *testing.T) {
	m := NewManager()

	fixed := m.GetArray(4, m.GetInt())
	open := m.GetArray(-1, m.GetInt())
	otherFixed := m.GetArray(3, m.GetInt())

	if !fixed.Match(open) {
		t.Errorf("fixed array should match an open array of the same element type")
	}
	if fixed.Match(otherFixed) {
		t.Errorf("arrays of different fixed lengths must not match")
	}
}

func TestArraySizeAndInnerType(t *testing.T) {
	m := NewManager()

	rows := m.GetArray(3, m.GetArray(4, m.GetInt()))
	arr, ok := rows.(*ArrayType)
	if !ok {
		t.Fatalf("expected *ArrayType, got %T", rows)
	}
	if rows.Size() != 3*4*4 {
		t.Errorf("Size() = %d, want %d", rows.Size(), 3*4*4)
	}
	inner := arr.GetInnerType()
	if !inner.IsArray() {
		t.Errorf("GetInnerType() should unwrap exactly one dimension")
	}
}

func TestPointerRoundTrip(t *testing.T) {
	m := NewManager()

	arr := m.GetArray(4, m.GetInt())
	ptr := m.GetPointer(arr)

	pt, ok := ptr.(*PointerType)
	if !ok {
		t.Fatalf("expected *PointerType, got %T", ptr)
	}
	if !pt.GetBaseType().Match(arr) {
		t.Errorf("GetBaseType() should round-trip the pointed-to type")
	}
	if !ptr.IsPointer() || ptr.IsArray() || !ptr.IsScalar() {
		t.Errorf("pointer classification flags are wrong")
	}
}
