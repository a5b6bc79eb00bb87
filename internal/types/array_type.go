package types

import (
	"fmt"
	"math"
)

const (
	// Open is the element count of an array whose length is only known
	// at runtime.
	Open = -1

	// MaxArraySize bounds the total size of an array including its
	// metadata.
	MaxArraySize = math.MaxInt32

	arrayMetadataSize = 8
)

// ArrayType is an array of NElem elements of InnerType. Multi-dimensional
// arrays nest: integer[2][3] is an array of 2 arrays of 3 integers.
type ArrayType struct {
	nelem     int
	innerType Type
}

func (a *ArrayType) Kind() Kind {
	return KindArray
}

func (a *ArrayType) Name() string {
	return "array"
}

func (a *ArrayType) NElem() int {
	return a.nelem
}

func (a *ArrayType) IsOpen() bool {
	return a.nelem == Open
}

func (a *ArrayType) InnerType() Type {
	return a.innerType
}

// BaseType is the innermost non-array type.
func (a *ArrayType) BaseType() Type {
	if inner, ok := a.innerType.(*ArrayType); ok {
		return inner.BaseType()
	}

	return a.innerType
}

func (a *ArrayType) NDim() int {
	if inner, ok := a.innerType.(*ArrayType); ok {
		return inner.NDim() + 1
	}

	return 1
}

// Size includes the metadata header: the number of dimensions followed by
// the length of every dimension, 4 bytes each.
func (a *ArrayType) Size() int {
	return 4 + 4*a.NDim() + a.DataSize()
}

func (a *ArrayType) DataSize() int {
	if a.IsOpen() {
		return 0
	}

	return a.nelem * a.innerType.DataSize()
}

func (a *ArrayType) Align() int {
	return 4
}

func (a *ArrayType) Match(t Type) bool {
	other, ok := t.(*ArrayType)
	if !ok {
		return false
	}

	if !a.IsOpen() && !other.IsOpen() && a.nelem != other.nelem {
		return false
	}

	return a.innerType.Match(other.innerType)
}

func (a *ArrayType) Compare(t Type) bool {
	other, ok := t.(*ArrayType)
	if !ok {
		return false
	}

	return a.nelem == other.nelem && a.innerType.Compare(other.innerType)
}

func (a *ArrayType) CanWiden(_ Type) bool {
	return false
}

func (a *ArrayType) String() string {
	if a.IsOpen() {
		return fmt.Sprintf("<%s of %s>", a.Name(), a.innerType)
	}

	return fmt.Sprintf("<%s %d of %s>", a.Name(), a.nelem, a.innerType)
}

func arraySizeFits(nelem int, inner Type) bool {
	if nelem > MaxArraySize {
		return false
	}

	size := int64(inner.DataSize())
	if nelem != Open {
		size *= int64(nelem)
	}

	return size+arrayMetadataSize <= MaxArraySize
}
