package types

type scalarType struct {
	kind Kind
	name string
	size int
}

func (s *scalarType) Kind() Kind {
	return s.kind
}

func (s *scalarType) Name() string {
	return s.name
}

func (s *scalarType) Size() int {
	return s.size
}

func (s *scalarType) Align() int {
	return max(s.size, 1)
}

func (s *scalarType) DataSize() int {
	return s.size
}

// Scalars match and compare equal only to scalars of the same kind.
func (s *scalarType) Match(t Type) bool {
	return t != nil && t.Kind() == s.kind
}

func (s *scalarType) Compare(t Type) bool {
	return s.Match(t)
}

func (s *scalarType) CanWiden(_ Type) bool {
	return false
}

func (s *scalarType) String() string {
	return "<" + s.name + ">"
}

type NullType struct {
	scalarType
}

type BoolType struct {
	scalarType
}

type CharType struct {
	scalarType
}

func newNullType() *NullType {
	return &NullType{scalarType{kind: KindNull, name: "NULL", size: 0}}
}

func newBoolType() *BoolType {
	return &BoolType{scalarType{kind: KindBool, name: "boolean", size: 1}}
}

func newCharType() *CharType {
	return &CharType{scalarType{kind: KindChar, name: "char", size: 1}}
}
