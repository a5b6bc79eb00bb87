package ast

import "fmt"

type Operation int

const (
	OpAdd Operation = iota
	OpSub
	OpMul
	OpDiv
	OpAnd
	OpOr

	OpEqual
	OpNotEqual
	OpLessThan
	OpLessEqual
	OpBiggerThan
	OpBiggerEqual

	OpNeg
	OpPos
	OpNot
)

func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpEqual:
		return "="
	case OpNotEqual:
		return "#"
	case OpLessThan:
		return "<"
	case OpLessEqual:
		return "<="
	case OpBiggerThan:
		return ">"
	case OpBiggerEqual:
		return ">="
	case OpNeg:
		return "neg"
	case OpPos:
		return "pos"
	case OpNot:
		return "not"
	default:
		panic(fmt.Sprintf("Operation.String(): received illegal operation: %d", op))
	}
}

func (op Operation) IsRelational() bool {
	return op >= OpEqual && op <= OpBiggerEqual
}

func (op Operation) IsLogical() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}
