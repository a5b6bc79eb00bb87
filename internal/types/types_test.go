package types

import (
	"testing"
)

func newTestManager(t *testing.T, wordSize int) *Manager {
	t.Helper()

	m, err := NewManager(wordSize)
	if err != nil {
		t.Fatalf("NewManager(%d) error = %v", wordSize, err)
	}

	return m
}

func mustArray(t *testing.T, m *Manager, nelem int, inner Type) *ArrayType {
	t.Helper()

	a, ok := m.ArrayOf(nelem, inner)
	if !ok {
		t.Fatalf("ArrayOf(%d, %s) rejected", nelem, inner)
	}

	return a
}

func TestNewManager(t *testing.T) {
	tests := []struct {
		wordSize int
		register Kind
		wantErr  bool
	}{
		{wordSize: 4, register: KindInteger},
		{wordSize: 8, register: KindLongint},
		{wordSize: 2, wantErr: true},
	}

	for _, tt := range tests {
		m, err := NewManager(tt.wordSize)
		if (err != nil) != tt.wantErr {
			t.Fatalf("NewManager(%d) error = %v, wantErr %v", tt.wordSize, err, tt.wantErr)
		}
		if tt.wantErr {
			continue
		}

		if got := m.RegisterType().Kind(); got != tt.register {
			t.Errorf("NewManager(%d).RegisterType() = %v, want %v", tt.wordSize, got, tt.register)
		}
		if got := m.VoidPtr().Size(); got != tt.wordSize {
			t.Errorf("NewManager(%d).VoidPtr().Size() = %d", tt.wordSize, got)
		}
	}
}

func TestPointerInterning(t *testing.T) {
	m := newTestManager(t, 8)

	p1 := m.PointerTo(m.Integer())
	p2 := m.PointerTo(m.Integer())
	if p1 != p2 {
		t.Errorf("PointerTo(integer) returned distinct instances")
	}

	if m.PointerTo(m.Char()) == p1 {
		t.Errorf("PointerTo(char) == PointerTo(integer)")
	}

	if m.PointerTo(nil) != m.VoidPtr() || m.PointerTo(m.Null()) != m.VoidPtr() {
		t.Errorf("PointerTo(nil/null) is not the void pointer")
	}

	pp := m.PointerTo(p1)
	if pp == m.PointerTo(m.VoidPtr()) {
		t.Errorf("pointer to pointer collapsed into pointer to void pointer")
	}
	if pp != m.PointerTo(m.PointerTo(m.Integer())) {
		t.Errorf("nested pointer not interned")
	}

	if got := len(m.Pointers()); got != 5 {
		t.Errorf("len(Pointers()) = %d, want 5", got)
	}
	if m.Pointers()[0] != m.VoidPtr() {
		t.Errorf("Pointers()[0] is not the void pointer")
	}
}

func TestArrayInterning(t *testing.T) {
	m := newTestManager(t, 8)

	a5 := mustArray(t, m, 5, m.Integer())
	if again := mustArray(t, m, 5, m.Integer()); again != a5 {
		t.Errorf("ArrayOf(5, integer) returned distinct instances")
	}
	if a6 := mustArray(t, m, 6, m.Integer()); a6 == a5 {
		t.Errorf("ArrayOf(6, integer) == ArrayOf(5, integer)")
	}
	if open := mustArray(t, m, Open, m.Integer()); open == a5 {
		t.Errorf("open array == ArrayOf(5, integer)")
	}

	nested := mustArray(t, m, 3, a5)
	if again := mustArray(t, m, 3, mustArray(t, m, 5, m.Integer())); again != nested {
		t.Errorf("nested array not interned")
	}

	if got := len(m.Arrays()); got != 4 {
		t.Errorf("len(Arrays()) = %d, want 4", got)
	}
}

func TestArrayRejected(t *testing.T) {
	m := newTestManager(t, 8)

	tests := []struct {
		name  string
		nelem int
		inner Type
	}{
		{name: "Zero Elements", nelem: 0, inner: m.Integer()},
		{name: "Negative Elements", nelem: -5, inner: m.Integer()},
		{name: "Nil Inner", nelem: 1, inner: nil},
		{name: "Too Large", nelem: MaxArraySize / 4, inner: m.Integer()},
		{name: "Too Many Elements", nelem: MaxArraySize, inner: m.Integer()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if a, ok := m.ArrayOf(tt.nelem, tt.inner); ok {
				t.Errorf("ArrayOf(%d, %v) = %v, want rejected", tt.nelem, tt.inner, a)
			}
		})
	}

	if got := len(m.Arrays()); got != 0 {
		t.Errorf("rejected arrays were registered: %d", got)
	}

	if _, ok := m.ArrayOf(MaxArraySize-8, m.Char()); !ok {
		t.Errorf("largest char array rejected")
	}
}

func TestSizes(t *testing.T) {
	m := newTestManager(t, 4)

	a := mustArray(t, m, 5, m.Integer())
	a2 := mustArray(t, m, 3, a)
	open := mustArray(t, m, Open, m.Char())

	tests := []struct {
		typ      Type
		size     int
		align    int
		dataSize int
	}{
		{typ: m.Null(), size: 0, align: 1, dataSize: 0},
		{typ: m.Bool(), size: 1, align: 1, dataSize: 1},
		{typ: m.Char(), size: 1, align: 1, dataSize: 1},
		{typ: m.Integer(), size: 4, align: 4, dataSize: 4},
		{typ: m.Longint(), size: 8, align: 8, dataSize: 8},
		{typ: m.VoidPtr(), size: 4, align: 4, dataSize: 4},
		{typ: a, size: 4 + 4 + 20, align: 4, dataSize: 20},
		{typ: a2, size: 4 + 8 + 60, align: 4, dataSize: 60},
		{typ: open, size: 8, align: 4, dataSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.typ.Align(); got != tt.align {
				t.Errorf("Align() = %d, want %d", got, tt.align)
			}
			if got := tt.typ.DataSize(); got != tt.dataSize {
				t.Errorf("DataSize() = %d, want %d", got, tt.dataSize)
			}
		})
	}

	if a2.NDim() != 2 || a2.BaseType() != m.Integer() || a2.InnerType() != a {
		t.Errorf("nested array: ndim %d, base %v, inner %v", a2.NDim(), a2.BaseType(), a2.InnerType())
	}
}

func TestRelations(t *testing.T) {
	m := newTestManager(t, 8)

	intPtr := m.PointerTo(m.Integer())
	charPtr := m.PointerTo(m.Char())
	a5 := mustArray(t, m, 5, m.Integer())
	a6 := mustArray(t, m, 6, m.Integer())
	aOpen := mustArray(t, m, Open, m.Integer())
	c5 := mustArray(t, m, 5, m.Char())

	tests := []struct {
		name     string
		a, b     Type
		match    bool
		compare  bool
		canWiden bool
	}{
		{name: "integer/integer", a: m.Integer(), b: m.Integer(), match: true, compare: true},
		{name: "integer/longint", a: m.Integer(), b: m.Longint()},
		{name: "longint/integer", a: m.Longint(), b: m.Integer(), canWiden: true},
		{name: "char/integer", a: m.Char(), b: m.Integer()},
		{name: "boolean/boolean", a: m.Bool(), b: m.Bool(), match: true, compare: true},
		{name: "integer/ptr", a: m.Integer(), b: intPtr},
		{name: "ptr/ptr", a: intPtr, b: intPtr, match: true, compare: true},
		{name: "ptr/other ptr", a: intPtr, b: charPtr},
		{name: "ptr/void", a: intPtr, b: m.VoidPtr(), match: true, compare: true},
		{name: "void/ptr", a: m.VoidPtr(), b: charPtr, match: true, compare: true},
		{name: "array/same", a: a5, b: a5, match: true, compare: true},
		{name: "array/other count", a: a5, b: a6},
		{name: "array/open", a: a5, b: aOpen, match: true},
		{name: "open/array", a: aOpen, b: a6, match: true},
		{name: "array/other inner", a: a5, b: c5},
		{name: "array/scalar", a: a5, b: m.Integer()},
		{name: "ptr to array/ptr to open", a: m.PointerTo(a5), b: m.PointerTo(aOpen), match: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Match(tt.b); got != tt.match {
				t.Errorf("Match() = %v, want %v", got, tt.match)
			}
			if got := tt.a.Compare(tt.b); got != tt.compare {
				t.Errorf("Compare() = %v, want %v", got, tt.compare)
			}
			if got := tt.a.CanWiden(tt.b); got != tt.canWiden {
				t.Errorf("CanWiden() = %v, want %v", got, tt.canWiden)
			}
		})
	}
}

func TestAssignable(t *testing.T) {
	m := newTestManager(t, 8)

	if !Assignable(m.Longint(), m.Integer()) {
		t.Errorf("integer not assignable to longint")
	}
	if Assignable(m.Integer(), m.Longint()) {
		t.Errorf("longint assignable to integer")
	}
	if Assignable(nil, m.Integer()) {
		t.Errorf("assignable to nil")
	}
}

func TestString(t *testing.T) {
	m := newTestManager(t, 8)

	a := mustArray(t, m, 5, m.Integer())
	tests := []struct {
		typ      Type
		expected string
	}{
		{typ: m.Null(), expected: "<NULL>"},
		{typ: m.Longint(), expected: "<longint>"},
		{typ: m.VoidPtr(), expected: "<ptr(8) to <NULL>>"},
		{typ: a, expected: "<array 5 of <integer>>"},
		{typ: mustArray(t, m, Open, a), expected: "<array of <array 5 of <integer>>>"},
		{typ: m.PointerTo(a), expected: "<ptr(8) to <array 5 of <integer>>>"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
