package symtab

import (
	"fmt"
	"strings"

	"github.com/kievzenit/snuplc/internal/types"
)

type SymbolKind int

const (
	GlobalVar SymbolKind = iota
	LocalVar
	Param
	Procedure
	Constant
)

func (k SymbolKind) String() string {
	switch k {
	case GlobalVar:
		return "global"
	case LocalVar:
		return "local"
	case Param:
		return "parameter"
	case Procedure:
		return "procedure"
	case Constant:
		return "constant"
	default:
		panic(fmt.Sprintf("SymbolKind.String(): received illegal symbol kind: %d", k))
	}
}

func (k SymbolKind) sigil() string {
	switch k {
	case GlobalVar:
		return "@"
	case LocalVar:
		return "$"
	case Param:
		return "%"
	case Procedure:
		return "*"
	case Constant:
		return "="
	}

	return ""
}

// Symbol is a named entity owned by exactly one scope. For procedures Type
// is the return type, the null type when there is none.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type types.Type

	// Scope is set by Table.AddSymbol once the symbol has an owner.
	Scope ScopeID

	// Data holds the value of constants and initialized globals.
	Data Data

	// Location is filled in by storage allocation; nil until then.
	Location *Storage

	// Index is the zero-based position of a parameter.
	Index int

	External bool

	params []*Symbol
}

func newSymbol(name string, kind SymbolKind, typ types.Type) *Symbol {
	return &Symbol{
		Name:  name,
		Kind:  kind,
		Type:  typ,
		Scope: NoScope,
	}
}

func NewGlobal(name string, typ types.Type) *Symbol {
	return newSymbol(name, GlobalVar, typ)
}

func NewLocal(name string, typ types.Type) *Symbol {
	return newSymbol(name, LocalVar, typ)
}

func NewParam(index int, name string, typ types.Type) *Symbol {
	s := newSymbol(name, Param, typ)
	s.Index = index
	return s
}

func NewProcedure(name string, returnType types.Type) *Symbol {
	return newSymbol(name, Procedure, returnType)
}

func NewConstant(name string, typ types.Type, data Data) *Symbol {
	s := newSymbol(name, Constant, typ)
	s.Data = data
	return s
}

func (s *Symbol) IsVariable() bool {
	return s.Kind == GlobalVar || s.Kind == LocalVar || s.Kind == Param
}

func (s *Symbol) AddParam(param *Symbol) {
	s.params = append(s.params, param)
}

func (s *Symbol) NParams() int {
	return len(s.params)
}

func (s *Symbol) Param(i int) *Symbol {
	if i < 0 || i >= len(s.params) {
		return nil
	}

	return s.params[i]
}

func (s *Symbol) String() string {
	if s.Kind == Procedure {
		params := make([]string, len(s.params))
		for i, p := range s.params {
			params[i] = p.Type.String()
		}

		return fmt.Sprintf("[ *%s(%s) --> %s ]", s.Name, strings.Join(params, ","), s.Type)
	}

	location := ""
	if s.Location != nil && s.Kind != Constant {
		location = " " + s.Location.String()
	}

	return fmt.Sprintf("[ %s%-8s %s%s ]", s.Kind.sigil(), s.Name, s.Type, location)
}
