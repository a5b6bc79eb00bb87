package parser

import (
	"github.com/kievzenit/snuplc/internal/symtab"
	"github.com/kievzenit/snuplc/internal/types"
)

type predefinedParam struct {
	name string
	typ  types.Type
}

// declarePredefined adds the runtime library subroutines every module can
// call without declaring them.
func (p *Parser) declarePredefined(scope symtab.ScopeID) {
	tm := p.types

	openChars, _ := tm.ArrayOf(types.Open, tm.Char())

	predefined := []struct {
		name       string
		returnType types.Type
		params     []predefinedParam
	}{
		{"DIM", tm.Integer(), []predefinedParam{{"array", tm.VoidPtr()}, {"dim", tm.Integer()}}},
		{"DOFS", tm.Integer(), []predefinedParam{{"array", tm.VoidPtr()}}},
		{"ReadInt", tm.Integer(), nil},
		{"ReadLong", tm.Longint(), nil},
		{"WriteInt", tm.Null(), []predefinedParam{{"i", tm.Integer()}}},
		{"WriteLong", tm.Null(), []predefinedParam{{"l", tm.Longint()}}},
		{"WriteChar", tm.Null(), []predefinedParam{{"c", tm.Char()}}},
		{"WriteStr", tm.Null(), []predefinedParam{{"str", tm.PointerTo(openChars)}}},
		{"WriteLn", tm.Null(), nil},
	}

	for _, decl := range predefined {
		proc := symtab.NewProcedure(decl.name, decl.returnType)
		proc.External = true

		for i, param := range decl.params {
			proc.AddParam(symtab.NewParam(i, param.name, param.typ))
		}

		p.symtab.AddSymbol(scope, proc)
	}
}
