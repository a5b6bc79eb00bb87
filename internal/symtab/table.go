package symtab

import (
	"slices"
	"strings"
)

// ScopeID addresses a scope inside a Table.
type ScopeID int

const NoScope ScopeID = -1

type SearchMode int

const (
	// Local only searches the given scope.
	Local SearchMode = iota
	// Global searches the given scope and then every enclosing one.
	Global
)

type scope struct {
	name    string
	parent  ScopeID
	symbols map[string]*Symbol
}

// Table holds every scope of a module. Scopes are never removed; a scope
// only refers to its parent through its id.
type Table struct {
	scopes []scope
}

func NewTable(rootName string) *Table {
	t := &Table{}
	t.newScope(NoScope, rootName)

	return t
}

func (t *Table) Root() ScopeID {
	return 0
}

func (t *Table) NewScope(parent ScopeID, name string) ScopeID {
	if !t.valid(parent) {
		parent = t.Root()
	}

	return t.newScope(parent, name)
}

func (t *Table) newScope(parent ScopeID, name string) ScopeID {
	t.scopes = append(t.scopes, scope{
		name:    name,
		parent:  parent,
		symbols: make(map[string]*Symbol),
	})

	return ScopeID(len(t.scopes) - 1)
}

// Parent returns the enclosing scope; ok is false for the root.
func (t *Table) Parent(id ScopeID) (ScopeID, bool) {
	if !t.valid(id) || t.scopes[id].parent == NoScope {
		return NoScope, false
	}

	return t.scopes[id].parent, true
}

func (t *Table) Name(id ScopeID) string {
	if !t.valid(id) {
		return ""
	}

	return t.scopes[id].name
}

func (t *Table) Scopes() []ScopeID {
	ids := make([]ScopeID, len(t.scopes))
	for i := range t.scopes {
		ids[i] = ScopeID(i)
	}

	return ids
}

// AddSymbol inserts sym into the scope id. Global variables always end up
// in the root scope. It fails if the owning scope already has a symbol
// with the same name.
func (t *Table) AddSymbol(id ScopeID, sym *Symbol) bool {
	if sym == nil || !t.valid(id) {
		return false
	}

	if parent, ok := t.Parent(id); ok && sym.Kind == GlobalVar {
		return t.AddSymbol(parent, sym)
	}

	symbols := t.scopes[id].symbols
	if _, exists := symbols[sym.Name]; exists {
		return false
	}

	symbols[sym.Name] = sym
	sym.Scope = id

	return true
}

func (t *Table) FindSymbol(id ScopeID, name string, mode SearchMode) (*Symbol, bool) {
	for t.valid(id) {
		if sym, ok := t.scopes[id].symbols[name]; ok {
			return sym, true
		}

		if mode == Local {
			break
		}
		id = t.scopes[id].parent
	}

	return nil, false
}

// Symbols returns the symbols owned directly by the scope, sorted by name.
func (t *Table) Symbols(id ScopeID) []*Symbol {
	if !t.valid(id) {
		return nil
	}

	result := make([]*Symbol, 0, len(t.scopes[id].symbols))
	for _, sym := range t.scopes[id].symbols {
		result = append(result, sym)
	}
	slices.SortFunc(result, func(a, b *Symbol) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result
}

// Dump renders one scope the way the symbol table is printed for
// debugging: every symbol on its own line, data initializers below it.
func (t *Table) Dump(id ScopeID, indent int) string {
	var sb strings.Builder
	ind := strings.Repeat(" ", indent)

	sb.WriteString(ind + "[[")
	for _, sym := range t.Symbols(id) {
		sb.WriteString("\n" + ind + "  " + sym.String())
		if sym.Data != nil {
			sb.WriteString("\n" + ind + "    " + sym.Data.String())
		}
	}
	sb.WriteString("\n" + ind + "]]\n")

	return sb.String()
}

func (t *Table) String() string {
	var sb strings.Builder

	for _, id := range t.Scopes() {
		sb.WriteString(t.Name(id) + ":\n")
		sb.WriteString(t.Dump(id, 0))
	}

	return sb.String()
}

func (t *Table) valid(id ScopeID) bool {
	return id >= 0 && int(id) < len(t.scopes)
}
