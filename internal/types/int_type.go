package types

import "math"

type IntegerType struct {
	scalarType
}

type LongintType struct {
	scalarType
}

func newIntegerType() *IntegerType {
	return &IntegerType{scalarType{kind: KindInteger, name: "integer", size: 4}}
}

func newLongintType() *LongintType {
	return &LongintType{scalarType{kind: KindLongint, name: "longint", size: 8}}
}

func (i *IntegerType) MinValue() int64 { return math.MinInt32 }
func (i *IntegerType) MaxValue() int64 { return math.MaxInt32 }

func (l *LongintType) MinValue() int64 { return math.MinInt64 }
func (l *LongintType) MaxValue() int64 { return math.MaxInt64 }

// An integer value always fits into a longint.
func (l *LongintType) CanWiden(t Type) bool {
	return t != nil && t.Kind() == KindInteger
}
