package types

import (
	"fmt"
	"slices"
	"strings"
)

type arrayKey struct {
	nelem int
	inner Type
}

// Manager owns the canonical type descriptors of one compilation. Pointer
// and array types are interned: asking twice for the same shape returns the
// same instance, so identity comparison implies structural equality.
//
// Inner and base types are themselves canonical, which is why the interning
// indexes can key on their identity.
type Manager struct {
	wordSize int

	null    *NullType
	boolean *BoolType
	char    *CharType
	integer *IntegerType
	longint *LongintType

	register Type
	voidPtr  *PointerType

	pointers     []*PointerType
	pointerIndex map[Type]*PointerType

	arrays     []*ArrayType
	arrayIndex map[arrayKey]*ArrayType
}

func NewManager(wordSize int) (*Manager, error) {
	m := &Manager{
		wordSize: wordSize,

		null:    newNullType(),
		boolean: newBoolType(),
		char:    newCharType(),
		integer: newIntegerType(),
		longint: newLongintType(),

		pointerIndex: make(map[Type]*PointerType),
		arrayIndex:   make(map[arrayKey]*ArrayType),
	}

	switch wordSize {
	case 4:
		m.register = m.integer
	case 8:
		m.register = m.longint
	default:
		return nil, fmt.Errorf("unsupported machine word size %d", wordSize)
	}

	m.voidPtr = m.PointerTo(m.null)

	return m, nil
}

func (m *Manager) WordSize() int         { return m.wordSize }
func (m *Manager) Null() *NullType       { return m.null }
func (m *Manager) Bool() *BoolType       { return m.boolean }
func (m *Manager) Char() *CharType       { return m.char }
func (m *Manager) Integer() *IntegerType { return m.integer }
func (m *Manager) Longint() *LongintType { return m.longint }
func (m *Manager) VoidPtr() *PointerType { return m.voidPtr }
func (m *Manager) RegisterType() Type    { return m.register }

// PointerTo returns the canonical pointer to base. A nil base yields the
// void pointer.
func (m *Manager) PointerTo(base Type) *PointerType {
	if base == nil {
		base = m.null
	}

	if p, ok := m.pointerIndex[base]; ok {
		return p
	}

	p := &PointerType{
		BaseType: base,
		wordSize: m.wordSize,
	}
	m.pointers = append(m.pointers, p)
	m.pointerIndex[base] = p

	return p
}

// ArrayOf returns the canonical array of nelem elements of inner. nelem is
// either positive or Open. The result is false if the request is malformed
// or the array would exceed MaxArraySize.
func (m *Manager) ArrayOf(nelem int, inner Type) (*ArrayType, bool) {
	if inner == nil || (nelem <= 0 && nelem != Open) {
		return nil, false
	}

	key := arrayKey{nelem: nelem, inner: inner}
	if a, ok := m.arrayIndex[key]; ok {
		return a, true
	}

	if !arraySizeFits(nelem, inner) {
		return nil, false
	}

	a := &ArrayType{
		nelem:     nelem,
		innerType: inner,
	}
	m.arrays = append(m.arrays, a)
	m.arrayIndex[key] = a

	return a, true
}

// Pointers lists the interned pointer types in creation order; the void
// pointer comes first.
func (m *Manager) Pointers() []*PointerType {
	return slices.Clone(m.pointers)
}

func (m *Manager) Arrays() []*ArrayType {
	return slices.Clone(m.arrays)
}

func (m *Manager) String() string {
	var sb strings.Builder

	sb.WriteString("[[ type manager\n")
	sb.WriteString("  base types:\n")
	for _, t := range []Type{m.null, m.boolean, m.char, m.integer, m.longint, m.voidPtr} {
		fmt.Fprintf(&sb, "    %s\n", t)
	}
	sb.WriteString("\n")

	sb.WriteString("  machine register type:\n")
	fmt.Fprintf(&sb, "    %s\n\n", m.register)

	sb.WriteString("  pointer types:\n")
	for _, p := range m.pointers {
		fmt.Fprintf(&sb, "    %s\n", p)
	}
	sb.WriteString("\n")

	sb.WriteString("  array types:\n")
	for _, a := range m.arrays {
		fmt.Fprintf(&sb, "    %s\n", a)
	}
	sb.WriteString("]]\n")

	return sb.String()
}
