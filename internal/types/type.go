package types

import "fmt"

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindChar
	KindInteger
	KindLongint
	KindPointer
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindChar:
		return "char"
	case KindInteger:
		return "integer"
	case KindLongint:
		return "longint"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	default:
		panic(fmt.Sprintf("Kind.String(): received illegal type kind: %d", k))
	}
}

// Type is a type descriptor. Descriptors are created and owned by a Manager
// and never change after creation, so they may be shared freely.
type Type interface {
	Kind() Kind
	Name() string

	// Size is the storage size in bytes, Align the required alignment.
	// DataSize is the size of the payload without any metadata.
	Size() int
	Align() int
	DataSize() int

	// Match reports assignment and parameter compatibility.
	Match(t Type) bool
	// Compare reports whether t denotes the same type.
	Compare(t Type) bool
	// CanWiden reports whether a value of type t may be implicitly
	// promoted to the receiver.
	CanWiden(t Type) bool

	String() string
}

func IsScalar(t Type) bool {
	return t != nil && t.Kind() <= KindLongint
}

func IsIntegral(t Type) bool {
	return t != nil && (t.Kind() == KindInteger || t.Kind() == KindLongint)
}

func IsPointer(t Type) bool {
	return t != nil && t.Kind() == KindPointer
}

func IsArray(t Type) bool {
	return t != nil && t.Kind() == KindArray
}

// Assignable reports whether a value of type src may be stored in a
// location of type dst, either directly or by widening.
func Assignable(dst, src Type) bool {
	if dst == nil || src == nil {
		return false
	}

	return dst.Match(src) || dst.CanWiden(src)
}
