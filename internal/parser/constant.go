package parser

import (
	"fmt"
	"math/big"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/symtab"
	"github.com/kievzenit/snuplc/internal/types"
)

// constValue is the result of evaluating a constant expression. Booleans
// are 0 or 1, characters their byte value; strings use str.
type constValue struct {
	typ      types.Type
	value    int64
	str      string
	isString bool
}

type valueRange interface {
	MinValue() int64
	MaxValue() int64
}

// evaluate folds a constant expression. Anything that is not known at
// compile time is an error.
func (p *Parser) evaluate(e ast.Expr) constValue {
	switch n := e.(type) {
	case *ast.Constant:
		return constValue{typ: n.Type, value: n.Value}
	case *ast.StringConstant:
		return constValue{typ: n.Symbol.Type, str: n.Value, isString: true}
	case *ast.Designator:
		if n.Symbol.Kind == symtab.Constant && n.Symbol.Data != nil {
			return p.dataValue(n.Symbol)
		}
	case *ast.UnaryOp:
		return p.evaluateUnary(n)
	case *ast.BinaryOp:
		return p.evaluateBinary(n)
	}

	p.semanticError(e.FirstToken(), "constant expression expected")
	return constValue{}
}

func (p *Parser) dataValue(sym *symtab.Symbol) constValue {
	switch d := sym.Data.(type) {
	case *symtab.IntegerData:
		return constValue{typ: p.types.Integer(), value: int64(d.Value)}
	case *symtab.LongintData:
		return constValue{typ: p.types.Longint(), value: d.Value}
	case *symtab.BooleanData:
		return constValue{typ: p.types.Bool(), value: boolValue(d.Value)}
	case *symtab.CharData:
		return constValue{typ: p.types.Char(), value: int64(d.Value)}
	case *symtab.StringData:
		return constValue{typ: sym.Type, str: d.Value, isString: true}
	}

	panic(fmt.Sprintf("parser.dataValue: unexpected data initializer %T", sym.Data))
}

func (p *Parser) evaluateUnary(n *ast.UnaryOp) constValue {
	v := p.evaluate(n.Operand)

	switch n.Op {
	case ast.OpNot:
		if v.typ.Kind() != types.KindBool {
			p.semanticError(n.StartToken, "boolean operand expected")
		}
		return constValue{typ: v.typ, value: 1 - v.value}
	case ast.OpPos:
		if !types.IsIntegral(v.typ) {
			p.semanticError(n.StartToken, "integer operand expected")
		}
		return v
	case ast.OpNeg:
		if !types.IsIntegral(v.typ) {
			p.semanticError(n.StartToken, "integer operand expected")
		}
		return p.arithmetic(n.StartToken, ast.OpSub, constValue{typ: v.typ}, v)
	}

	panic(fmt.Sprintf("parser.evaluateUnary: unexpected operation %s", n.Op))
}

func (p *Parser) evaluateBinary(n *ast.BinaryOp) constValue {
	l := p.evaluate(n.Left)
	r := p.evaluate(n.Right)

	if l.isString || r.isString {
		p.semanticError(n.StartToken, "invalid operand in constant expression")
	}

	switch {
	case n.Op == ast.OpAnd || n.Op == ast.OpOr:
		if l.typ.Kind() != types.KindBool || r.typ.Kind() != types.KindBool {
			p.semanticError(n.StartToken, "boolean operands expected")
		}
		if n.Op == ast.OpAnd {
			return constValue{typ: p.types.Bool(), value: l.value & r.value}
		}
		return constValue{typ: p.types.Bool(), value: l.value | r.value}

	case n.Op.IsRelational():
		comparable := (types.IsIntegral(l.typ) && types.IsIntegral(r.typ)) || l.typ.Match(r.typ)
		if !comparable {
			p.semanticError(n.StartToken, "operand type mismatch in constant expression")
		}
		if l.typ.Kind() == types.KindBool && n.Op != ast.OpEqual && n.Op != ast.OpNotEqual {
			p.semanticError(n.StartToken, "invalid relation for boolean operands")
		}
		return constValue{typ: p.types.Bool(), value: boolValue(compare(n.Op, l.value, r.value))}
	}

	if !types.IsIntegral(l.typ) || !types.IsIntegral(r.typ) {
		p.semanticError(n.StartToken, "integer operands expected")
	}

	return p.arithmetic(n.StartToken, n.Op, l, r)
}

// arithmetic computes l op r in the wider of both operand types and fails
// if the result does not fit.
func (p *Parser) arithmetic(tok *lexer.Token, op ast.Operation, l, r constValue) constValue {
	typ := l.typ
	if r.typ.Kind() == types.KindLongint {
		typ = r.typ
	}

	a, b := big.NewInt(l.value), big.NewInt(r.value)
	result := new(big.Int)

	switch op {
	case ast.OpAdd:
		result.Add(a, b)
	case ast.OpSub:
		result.Sub(a, b)
	case ast.OpMul:
		result.Mul(a, b)
	case ast.OpDiv:
		if b.Sign() == 0 {
			p.semanticError(tok, "division by zero in constant expression")
		}
		result.Quo(a, b)
	default:
		panic(fmt.Sprintf("parser.arithmetic: unexpected operation %s", op))
	}

	bounds := typ.(valueRange)
	if !result.IsInt64() || result.Int64() < bounds.MinValue() || result.Int64() > bounds.MaxValue() {
		p.semanticError(tok, fmt.Sprintf("%s overflow in constant expression", typ.Name()))
	}

	return constValue{typ: typ, value: result.Int64()}
}

func compare(op ast.Operation, a, b int64) bool {
	switch op {
	case ast.OpEqual:
		return a == b
	case ast.OpNotEqual:
		return a != b
	case ast.OpLessThan:
		return a < b
	case ast.OpLessEqual:
		return a <= b
	case ast.OpBiggerThan:
		return a > b
	case ast.OpBiggerEqual:
		return a >= b
	}

	panic(fmt.Sprintf("parser.compare: unexpected operation %s", op))
}

// constantData checks a folded initializer against the declared type and
// returns the type of the constant symbol with its data. Open array types
// take their length from a string initializer.
func (p *Parser) constantData(tok *lexer.Token, declared types.Type, v constValue) (types.Type, symtab.Data) {
	if v.isString {
		strType, ok := p.types.ArrayOf(len(v.str)+1, p.types.Char())
		if !ok {
			p.semanticError(tok, "string constant too long")
		}
		if !declared.Match(strType) {
			p.semanticError(tok, fmt.Sprintf("constant initializer type mismatch: expected %s, got %s", declared, strType))
		}
		return strType, &symtab.StringData{Value: v.str}
	}

	if !types.Assignable(declared, v.typ) {
		p.semanticError(tok, fmt.Sprintf("constant initializer type mismatch: expected %s, got %s", declared, v.typ))
	}

	switch declared.Kind() {
	case types.KindInteger:
		return declared, &symtab.IntegerData{Value: int32(v.value)}
	case types.KindLongint:
		return declared, &symtab.LongintData{Value: v.value}
	case types.KindBool:
		return declared, &symtab.BooleanData{Value: v.value != 0}
	case types.KindChar:
		return declared, &symtab.CharData{Value: byte(v.value)}
	}

	p.semanticError(tok, fmt.Sprintf("invalid constant type %s", declared))
	return nil, nil
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
