package types

import "fmt"

// PointerType points to BaseType. A pointer to the null type is the void
// pointer, which matches every other pointer.
type PointerType struct {
	BaseType Type

	wordSize int
}

func (p *PointerType) Kind() Kind {
	return KindPointer
}

func (p *PointerType) Name() string {
	return "ptr"
}

func (p *PointerType) Size() int {
	return p.wordSize
}

func (p *PointerType) Align() int {
	return p.wordSize
}

func (p *PointerType) DataSize() int {
	return p.wordSize
}

func (p *PointerType) IsVoid() bool {
	return p.BaseType == nil || p.BaseType.Kind() == KindNull
}

func (p *PointerType) Match(t Type) bool {
	other, ok := t.(*PointerType)
	if !ok {
		return false
	}

	if p.IsVoid() || other.IsVoid() {
		return true
	}

	return p.BaseType.Match(other.BaseType)
}

func (p *PointerType) Compare(t Type) bool {
	other, ok := t.(*PointerType)
	if !ok {
		return false
	}

	if p.IsVoid() || other.IsVoid() {
		return true
	}

	return p.BaseType.Compare(other.BaseType)
}

func (p *PointerType) CanWiden(_ Type) bool {
	return false
}

func (p *PointerType) String() string {
	base := "void"
	if p.BaseType != nil {
		base = p.BaseType.String()
	}

	return fmt.Sprintf("<%s(%d) to %s>", p.Name(), p.Size(), base)
}
