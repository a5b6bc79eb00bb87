package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/symtab"
	"github.com/kievzenit/snuplc/internal/types"
)

func newTypes(t *testing.T) *types.Manager {
	t.Helper()

	tm, err := types.NewManager(8)
	if err != nil {
		t.Fatalf("types.NewManager() error = %v", err)
	}

	return tm
}

func mustParse(t *testing.T, tm *types.Manager, src string, opts ...Option) *ast.Module {
	t.Helper()

	module, err := NewParser(lexer.NewStringScanner(src), tm, opts...).Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	return module
}

func mustParseStatements(t *testing.T, tm *types.Manager, src string) *ast.Module {
	t.Helper()

	module, err := NewParser(lexer.NewStringScanner(src), tm).ParseStatements()
	if err != nil {
		t.Fatalf("ParseStatements(%q) error = %v", src, err)
	}

	return module
}

func findSymbol(t *testing.T, module *ast.Module, scope symtab.ScopeID, name string) *symtab.Symbol {
	t.Helper()

	sym, ok := module.Symtab.FindSymbol(scope, name, symtab.Local)
	if !ok {
		t.Fatalf("symbol %q not found in scope %q", name, module.Symtab.Name(scope))
	}

	return sym
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "x := 1 + 2 * 3.", expected: "(+ 1 (* 2 3))"},
		{input: "x := 1 - 2 - 3.", expected: "(- (- 1 2) 3)"},
		{input: "x := 8 / 4 * 2.", expected: "(* (/ 8 4) 2)"},
		{input: "x := (1 + 2) * 3.", expected: "(* (+ 1 2) 3)"},
		{input: "x := -a * b.", expected: "(* (neg a) b)"},
		{input: "x := -5 * 2.", expected: "(* -5 2)"},
		{input: "x := - -5.", expected: "(neg -5)"},
		{input: "x := +a.", expected: "(pos a)"},
		{input: "x := a < b + 1.", expected: "(< a (+ b 1))"},
		{input: "x := a + b # c * d.", expected: "(# (+ a b) (* c d))"},
		{input: "x := a || b && c.", expected: "(|| a (&& b c))"},
		{input: "x := !a && b.", expected: "(&& (not a) b)"},
		{input: "x := -2147483648.", expected: "-2147483648"},
		{input: "x := -9223372036854775808L.", expected: "-9223372036854775808L"},
		{input: "x := 5L + 'a'.", expected: "(+ 5L 'a')"},
		{input: "x := true = false.", expected: "(= true false)"},
		{input: "x := a[1][i + 1].", expected: "a[1][(+ i 1)]"},
		{input: "x := ReadInt() + DIM(a, 1).", expected: "(+ ReadInt() DIM(a, 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			module := mustParseStatements(t, newTypes(t), tt.input)

			if len(module.Body) != 1 {
				t.Fatalf("len(Body) = %d, want 1", len(module.Body))
			}
			assign, ok := module.Body[0].(*ast.AssignStmt)
			if !ok {
				t.Fatalf("Body[0] = %T, want *ast.AssignStmt", module.Body[0])
			}

			if got := ast.FormatExpr(assign.Right); got != tt.expected {
				t.Errorf("FormatExpr() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMultiplicationBindsTighter(t *testing.T) {
	module := mustParseStatements(t, newTypes(t), "x := 1 + 2 * 3.")

	assign := module.Body[0].(*ast.AssignStmt)
	add, ok := assign.Right.(*ast.BinaryOp)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("root expression = %v, want addition", assign.Right)
	}

	mul, ok := add.Right.(*ast.BinaryOp)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("right child = %v, want multiplication", add.Right)
	}

	x := findSymbol(t, module, module.Scope, "x")
	if x.Kind != symtab.GlobalVar || x.Type.Kind() != types.KindInteger {
		t.Errorf("implicit x = %v", x)
	}
	if assign.Left.Target() != x {
		t.Errorf("assignment target is not the declared x")
	}
}

const fullModule = `module test;

const N: integer = 2 * 5;
      Big: longint = N;
      msg: char[] = "hi";

var a: integer[N][3];
    b, c: boolean;

// factorial
function fact(n: integer): integer;
var r: integer;
begin
  if (n <= 1) then
    return 1
  else
    return n * fact(n - 1)
  end
end fact;

procedure print(s: char[]);
begin
  WriteStr(s); WriteLn()
end print;

procedure foo(x: integer); extern;

begin
  a[0][1] := fact(N);
  print("hello");
  while (b && !c) do
    b := false
  end;
  return
end test.
`

func TestParseModule(t *testing.T) {
	tm := newTypes(t)
	module := mustParse(t, tm, fullModule)
	root := module.Scope

	if module.Name != "test" {
		t.Errorf("Name = %q", module.Name)
	}
	if len(module.Procedures) != 2 || module.Procedures[0].Name() != "fact" || module.Procedures[1].Name() != "print" {
		t.Fatalf("Procedures = %v", module.Procedures)
	}
	if len(module.Body) != 4 {
		t.Errorf("len(Body) = %d, want 4", len(module.Body))
	}

	t.Run("Constants", func(t *testing.T) {
		n := findSymbol(t, module, root, "N")
		if n.Kind != symtab.Constant || !reflect.DeepEqual(n.Data, &symtab.IntegerData{Value: 10}) {
			t.Errorf("N = %v %v", n, n.Data)
		}

		big := findSymbol(t, module, root, "Big")
		if big.Type != tm.Longint() || !reflect.DeepEqual(big.Data, &symtab.LongintData{Value: 10}) {
			t.Errorf("Big = %v %v", big, big.Data)
		}

		msg := findSymbol(t, module, root, "msg")
		msgType, _ := tm.ArrayOf(3, tm.Char())
		if msg.Type != msgType || !reflect.DeepEqual(msg.Data, &symtab.StringData{Value: "hi"}) {
			t.Errorf("msg = %v %v", msg, msg.Data)
		}
	})

	t.Run("Variables", func(t *testing.T) {
		inner, _ := tm.ArrayOf(3, tm.Integer())
		outer, _ := tm.ArrayOf(10, inner)

		a := findSymbol(t, module, root, "a")
		if a.Kind != symtab.GlobalVar || a.Type != outer {
			t.Errorf("a = %v, want global of %v", a, outer)
		}

		for _, name := range []string{"b", "c"} {
			if sym := findSymbol(t, module, root, name); sym.Type != tm.Bool() {
				t.Errorf("%s = %v", name, sym)
			}
		}
	})

	t.Run("Subroutines", func(t *testing.T) {
		fact := findSymbol(t, module, root, "fact")
		if fact.Kind != symtab.Procedure || fact.Type != tm.Integer() || fact.NParams() != 1 {
			t.Fatalf("fact = %v", fact)
		}

		factScope := module.Procedures[0].Scope
		if parent, _ := module.Symtab.Parent(factScope); parent != root {
			t.Errorf("fact scope parent = %d", parent)
		}

		n := findSymbol(t, module, factScope, "n")
		if n.Kind != symtab.Param || n.Index != 0 || fact.Param(0) != n {
			t.Errorf("n = %v", n)
		}
		if r := findSymbol(t, module, factScope, "r"); r.Kind != symtab.LocalVar {
			t.Errorf("r = %v", r)
		}

		var recursive *ast.FunctionCall
		ast.Inspect(module.Procedures[0], func(node ast.AstNode) bool {
			if call, ok := node.(*ast.FunctionCall); ok {
				recursive = call
			}
			return true
		})
		if recursive == nil || recursive.Symbol != fact {
			t.Errorf("recursive call does not resolve to fact")
		}

		openChars, _ := tm.ArrayOf(types.Open, tm.Char())
		printSym := findSymbol(t, module, root, "print")
		if s := printSym.Param(0); s.Type != tm.PointerTo(openChars) {
			t.Errorf("array parameter type = %v", s.Type)
		}
		if printSym.Type != tm.Null() {
			t.Errorf("procedure return type = %v", printSym.Type)
		}

		foo := findSymbol(t, module, root, "foo")
		if !foo.External || foo.NParams() != 1 {
			t.Errorf("foo = %v", foo)
		}
	})

	t.Run("String Literals", func(t *testing.T) {
		str := findSymbol(t, module, root, "_str_1")
		strType, _ := tm.ArrayOf(6, tm.Char())
		if str.Kind != symtab.GlobalVar || str.Type != strType || !reflect.DeepEqual(str.Data, &symtab.StringData{Value: "hello"}) {
			t.Errorf("_str_1 = %v %v", str, str.Data)
		}

		call := module.Body[1].(*ast.CallStmt).Call
		if arg, ok := call.Args[0].(*ast.StringConstant); !ok || arg.Symbol != str {
			t.Errorf("print argument = %v", call.Args[0])
		}
	})

	t.Run("Statements", func(t *testing.T) {
		expected := "a[0][1] := fact(N)\n" +
			"print(\"hello\")\n" +
			"while (&& b (not c)) do\n" +
			"  b := false\n" +
			"end\n" +
			"return\n"
		if got := ast.FormatStmts(module.Body, 0); got != expected {
			t.Errorf("FormatStmts() =\n%s\nwant\n%s", got, expected)
		}

		expected = "if (<= n 1) then\n" +
			"  return 1\n" +
			"else\n" +
			"  return (* n fact((- n 1)))\n" +
			"end\n"
		if got := ast.FormatStmts(module.Procedures[0].Body, 0); got != expected {
			t.Errorf("FormatStmts(fact) =\n%s\nwant\n%s", got, expected)
		}
	})
}

func TestShadowing(t *testing.T) {
	src := `module m;
var x: integer;
procedure p();
var x: char;
begin
  x := 'a'
end p;
begin
  x := 1
end m.`

	module := mustParse(t, newTypes(t), src)

	global := findSymbol(t, module, module.Scope, "x")
	local := findSymbol(t, module, module.Procedures[0].Scope, "x")

	inner := module.Procedures[0].Body[0].(*ast.AssignStmt)
	if inner.Left.Target() != local || local.Kind != symtab.LocalVar {
		t.Errorf("assignment in p targets %v, want the local x", inner.Left.Target())
	}

	outer := module.Body[0].(*ast.AssignStmt)
	if outer.Left.Target() != global {
		t.Errorf("assignment in module body targets %v, want the global x", outer.Left.Target())
	}
}

func TestStringLiteralsArePromoted(t *testing.T) {
	src := `module m;
var _str_1: integer;
procedure p();
begin
  WriteStr("a"); WriteStr("b")
end p;
end m.`

	module := mustParse(t, newTypes(t), src)
	pScope := module.Procedures[0].Scope

	for _, name := range []string{"_str_2", "_str_3"} {
		if _, ok := module.Symtab.FindSymbol(module.Scope, name, symtab.Local); !ok {
			t.Errorf("%s not in module scope", name)
		}
		if _, ok := module.Symtab.FindSymbol(pScope, name, symtab.Local); ok {
			t.Errorf("%s in procedure scope", name)
		}
	}

	if sym := findSymbol(t, module, module.Scope, "_str_1"); sym.Data != nil {
		t.Errorf("user variable _str_1 was overwritten: %v", sym)
	}
}

func TestPredefinedSymbols(t *testing.T) {
	module := mustParse(t, newTypes(t), "module m; end m.")

	tests := []struct {
		name    string
		nparams int
	}{
		{"DIM", 2}, {"DOFS", 1}, {"ReadInt", 0}, {"ReadLong", 0}, {"WriteInt", 1},
		{"WriteLong", 1}, {"WriteChar", 1}, {"WriteStr", 1}, {"WriteLn", 0},
	}

	for _, tt := range tests {
		sym := findSymbol(t, module, module.Scope, tt.name)
		if sym.Kind != symtab.Procedure || !sym.External || sym.NParams() != tt.nparams {
			t.Errorf("%s = %v, external %v", tt.name, sym, sym.External)
		}
	}
}

func TestConstantFolding(t *testing.T) {
	tests := []struct {
		decl     string
		expected symtab.Data
	}{
		{decl: "c: integer = -(3 + 4) * 2", expected: &symtab.IntegerData{Value: -14}},
		{decl: "c: integer = -2147483648", expected: &symtab.IntegerData{Value: -2147483648}},
		{decl: "c: integer = 7 / 2 - 1", expected: &symtab.IntegerData{Value: 2}},
		{decl: "c: longint = 2147483647L + 1", expected: &symtab.LongintData{Value: 2147483648}},
		{decl: "c: longint = 3", expected: &symtab.LongintData{Value: 3}},
		{decl: "c: boolean = (1 < 2) && !false", expected: &symtab.BooleanData{Value: true}},
		{decl: "c: boolean = 'a' # 'b'", expected: &symtab.BooleanData{Value: true}},
		{decl: "c: char = '\\n'", expected: &symtab.CharData{Value: '\n'}},
		{decl: "a: integer = 9; c: integer = a / 2", expected: &symtab.IntegerData{Value: 4}},
		{decl: "c: char[6] = \"hello\"", expected: &symtab.StringData{Value: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			module := mustParse(t, newTypes(t), "module m; const "+tt.decl+"; end m.")

			sym := findSymbol(t, module, module.Scope, "c")
			if sym.Kind != symtab.Constant {
				t.Errorf("Kind = %v", sym.Kind)
			}
			if !reflect.DeepEqual(sym.Data, tt.expected) {
				t.Errorf("Data = %v, want %v", sym.Data, tt.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		statements bool
		line       int
		column     int
		message    string
	}{
		{
			name:       "Unbalanced Parenthesis",
			input:      "x := (1 + 2.",
			statements: true,
			line:       1, column: 12,
			message: "unexpected token: 'DOT', expected: 'RPAREN'",
		},
		{
			name:       "Chained Relation",
			input:      "x := 1 < 2 < 3.",
			statements: true,
			line:       1, column: 12,
			message: "unexpected token: 'LT', expected: 'DOT'",
		},
		{
			name:       "Statement Expected",
			input:      "x := 1; .",
			statements: true,
			line:       1, column: 9,
			message: "unexpected token: 'DOT', expected one of: 'IDENT', 'IF', 'WHILE', 'RETURN'",
		},
		{
			name:       "Unterminated String",
			input:      "x := \"abc\n.",
			statements: true,
			line:       1, column: 6,
			message: "unterminated string constant: \"abc",
		},
		{
			name:       "Lone Ampersand",
			input:      "x := 1 & 2.",
			statements: true,
			line:       1, column: 8,
			message: "'&' not followed by '&'",
		},
		{
			name:       "Integer Out Of Range",
			input:      "x := 2147483648.",
			statements: true,
			line:       1, column: 6,
			message: "integer constant out of range",
		},
		{
			name:       "Undeclared Subroutine",
			input:      "x := foo(1).",
			statements: true,
			line:       1, column: 6,
			message: "undeclared subroutine 'foo'",
		},
		{
			name:       "Procedure As Function",
			input:      "x := WriteLn().",
			statements: true,
			line:       1, column: 6,
			message: "procedure 'WriteLn' does not return a value",
		},
		{
			name:  "Subroutine Name Mismatch",
			input: "module m;\nfunction f(): integer;\nbegin\n  return 1\nend g;\nbegin end m.",
			line:  5, column: 5,
			message: "name mismatch: expected 'f', got 'g'",
		},
		{
			name:  "Module Name Mismatch",
			input: "module m; begin end n.",
			line:  1, column: 21,
			message: "name mismatch: expected 'm', got 'n'",
		},
		{
			name:  "Duplicate Variable",
			input: "module m;\nvar x: integer;\n    x: char;\nbegin end m.",
			line:  3, column: 5,
			message: "duplicate declaration 'x'",
		},
		{
			name:  "Local Shadows Parameter",
			input: "module m;\nprocedure p(a: integer);\nvar a: char;\nbegin end p;\nend m.",
			line:  3, column: 5,
			message: "duplicate declaration 'a'",
		},
		{
			name:  "Undeclared Identifier",
			input: "module m;\nbegin\n  y := 1\nend m.",
			line:  3, column: 3,
			message: "undeclared identifier 'y'",
		},
		{
			name:  "Not A Subroutine",
			input: "module m; var x: integer; begin x() end m.",
			line:  1, column: 33,
			message: "'x' is not a subroutine",
		},
		{
			name:  "Subroutine As Value",
			input: "module m; var x: integer; begin x := WriteLn end m.",
			line:  1, column: 38,
			message: "subroutine 'WriteLn' used as a value",
		},
		{
			name:  "Assign To Constant",
			input: "module m; const c: integer = 1; begin c := 2 end m.",
			line:  1, column: 39,
			message: "cannot assign to constant 'c'",
		},
		{
			name:  "Unknown Type",
			input: "module m; var x: foo; begin end m.",
			line:  1, column: 18,
			message: "unexpected token: 'IDENT', expected one of: 'TYPE_BOOLEAN', 'TYPE_CHAR', 'TYPE_INTEGER', 'TYPE_LONGINT'",
		},
		{
			name:  "Open Array Variable",
			input: "module m; var x: integer[]; begin end m.",
			line:  1, column: 25,
			message: "open arrays are only allowed for parameters and constants",
		},
		{
			name:  "Variable Dimension",
			input: "module m; var n: integer; a: integer[n]; begin end m.",
			line:  1, column: 38,
			message: "constant expression expected",
		},
		{
			name:  "Zero Dimension",
			input: "module m; var a: integer[0]; begin end m.",
			line:  1, column: 26,
			message: "positive constant array dimension expected",
		},
		{
			name:  "Array Too Large",
			input: "module m; var a: longint[1000000000]; begin end m.",
			line:  1, column: 18,
			message: "array type too large",
		},
		{
			name:  "Constant Type Mismatch",
			input: "module m; const c: integer = true; begin end m.",
			line:  1, column: 30,
			message: "constant initializer type mismatch: expected <integer>, got <boolean>",
		},
		{
			name:  "Constant Narrowing",
			input: "module m; const c: integer = 1L; begin end m.",
			line:  1, column: 30,
			message: "constant initializer type mismatch: expected <integer>, got <longint>",
		},
		{
			name:  "Constant Division By Zero",
			input: "module m; const c: integer = 1 / 0; begin end m.",
			line:  1, column: 32,
			message: "division by zero in constant expression",
		},
		{
			name:  "Constant Overflow",
			input: "module m; const c: integer = 2147483647 + 1; begin end m.",
			line:  1, column: 41,
			message: "integer overflow in constant expression",
		},
		{
			name:  "Wrong Argument Count",
			input: "module m; begin WriteInt() end m.",
			line:  1, column: 17,
			message: "wrong number of arguments for 'WriteInt': expected 1, got 0",
		},
		{
			name:  "Missing Return Value",
			input: "module m; function f(): integer; begin return end f; end m.",
			line:  1, column: 40,
			message: "function 'f' must return a value",
		},
		{
			name:  "Return Value In Procedure",
			input: "module m; procedure p(); begin return 1 end p; end m.",
			line:  1, column: 39,
			message: "procedures cannot return a value",
		},
		{
			name:  "Return Value In Module Body",
			input: "module m; begin return 1 end m.",
			line:  1, column: 24,
			message: "the module body cannot return a value",
		},
		{
			name:  "Missing Module Keyword",
			input: "modul m; end m.",
			line:  1, column: 1,
			message: "unexpected token: 'IDENT', expected: 'MODULE'",
		},
		{
			name:  "Unexpected End Of File",
			input: "module m; begin",
			line:  1, column: 16,
			message: "unexpected token: 'EOF', expected: 'END'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(lexer.NewStringScanner(tt.input), newTypes(t))

			var (
				module *ast.Module
				err    error
			)
			if tt.statements {
				module, err = p.ParseStatements()
			} else {
				module, err = p.Parse()
			}

			if module != nil {
				t.Errorf("module returned together with an error")
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}

			if parseErr.Token.Line != tt.line || parseErr.Token.Column != tt.column {
				t.Errorf("error at %d:%d, want %d:%d", parseErr.Token.Line, parseErr.Token.Column, tt.line, tt.column)
			}
			if parseErr.Message != tt.message {
				t.Errorf("Message = %q, want %q", parseErr.Message, tt.message)
			}

			if !p.HasError() || p.ErrorMessage() != tt.message || *p.ErrorToken() != parseErr.Token {
				t.Errorf("post-failure accessors disagree with the returned error")
			}
		})
	}
}

func TestSuccessfulParseHasNoError(t *testing.T) {
	p := NewParser(lexer.NewStringScanner("module m; end m."), newTypes(t))

	if _, err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.HasError() || p.ErrorToken() != nil || p.ErrorMessage() != "" {
		t.Errorf("successful parse reports an error")
	}
}

func TestImplicitDeclarations(t *testing.T) {
	src := "module m;\nprocedure p();\nbegin\n  z := 2\nend p;\nbegin\n  y := 1\nend m."

	module := mustParse(t, newTypes(t), src, WithImplicitDeclarations(true))

	if y := findSymbol(t, module, module.Scope, "y"); y.Kind != symtab.GlobalVar {
		t.Errorf("y = %v, want global", y)
	}
	if z := findSymbol(t, module, module.Procedures[0].Scope, "z"); z.Kind != symtab.LocalVar {
		t.Errorf("z = %v, want local", z)
	}
}

func TestErrorMessageFormat(t *testing.T) {
	_, err := NewParser(lexer.NewStringScanner("x := (1."), newTypes(t)).ParseStatements()
	if err == nil {
		t.Fatalf("ParseStatements() succeeded")
	}

	if expected := "1:8: unexpected token: 'DOT', expected: 'RPAREN'"; err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	var unexpected *UnexpectedExpectedError
	if !errors.As(err, &unexpected) || unexpected.Expected != lexer.RPAREN {
		t.Errorf("cause = %v, want *UnexpectedExpectedError", errors.Unwrap(err))
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mustParse(t, newTypes(t), fullModule, WithLogger(logger))

	for _, msg := range []string{"module parsed", "subroutine declared", "symbols declared"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log output lacks %q:\n%s", msg, buf.String())
		}
	}
}
