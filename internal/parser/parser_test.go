package parser

import (
	"testing"

	"github.com/cwbudde/go-rift/internal/ast"
	"github.com/cwbudde/go-rift/internal/lexer"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(source, "test").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) returned an error: %v", source, err)
	}
	prog, err := Parse(toks, "test")
	if err != nil {
		t.Fatalf("Parse(%q) returned an error: %v", source, err)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parse(t, "let x = 5")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "x" || decl.Kind != ast.DeclLet {
		t.Errorf("got name=%q kind=%v, want name=x kind=DeclLet", decl.Name, decl.Kind)
	}
	lit, ok := decl.Init.(*ast.Literal)
	if !ok || lit.Value.(int64) != 5 {
		t.Errorf("expected Init to be literal 5, got %#v", decl.Init)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parse(t, "1 + 2 * 3")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	bin, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", stmt.Expr)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Fatalf("expected '*' to bind tighter, got %#v", bin.Right)
	}
}

func TestParseComparisonChain(t *testing.T) {
	prog := parse(t, "a < b <= c")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	chain, ok := stmt.Expr.(*ast.ComparisonChain)
	if !ok {
		t.Fatalf("expected *ast.ComparisonChain, got %T", stmt.Expr)
	}
	if len(chain.Operands) != 3 || len(chain.Operators) != 2 {
		t.Errorf("got %d operands, %d operators; want 3, 2", len(chain.Operands), len(chain.Operators))
	}
}

func TestParsePipeline(t *testing.T) {
	prog := parse(t, "data -> upper ~> save(it)")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	pipe, ok := stmt.Expr.(*ast.PipelineExpr)
	if !ok {
		t.Fatalf("expected *ast.PipelineExpr, got %T", stmt.Expr)
	}
	if len(pipe.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(pipe.Stages))
	}
	if pipe.Stages[0].Async {
		t.Error("first stage should be synchronous (->)")
	}
	if !pipe.Stages[1].Async {
		t.Error("second stage should be async (~>)")
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog := parse(t, "conduit add(a, b = 1, ...rest) @ give a + b #")
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 3 {
		t.Fatalf("got name=%q params=%d, want name=add params=3", fn.Name, len(fn.Params))
	}
	if fn.Params[2].Name != "rest" || !fn.Params[2].Rest {
		t.Errorf("expected third param to be a rest param named rest, got %#v", fn.Params[2])
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, "if x > 0 @ give 1 # else @ give 0 #")
	ifStmt, ok := prog.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseCheckStatement(t *testing.T) {
	source := `check x @
		1 => @ give "one" #
		_ => @ give "other" #
	#`
	prog := parse(t, source)
	chk, ok := prog.Statements[0].(*ast.CheckStmt)
	if !ok {
		t.Fatalf("expected *ast.CheckStmt, got %T", prog.Statements[0])
	}
	if len(chk.Cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(chk.Cases))
	}
	if _, ok := chk.Cases[1].Pattern.(*ast.WildcardPattern); !ok {
		t.Errorf("expected second case to be a wildcard pattern, got %T", chk.Cases[1].Pattern)
	}
}

func TestParseClassDecl(t *testing.T) {
	source := `make Animal @
		name
		build(name) @ me.name = name #
		conduit speak() @ give "..." #
	#`
	prog := parse(t, source)
	class, ok := prog.Statements[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", prog.Statements[0])
	}
	if class.Name != "Animal" {
		t.Errorf("got class name %q, want Animal", class.Name)
	}

	var hasCtor, hasMethod, hasProp bool
	for _, m := range class.Members {
		switch m.Kind {
		case ast.MemberConstructor:
			hasCtor = true
		case ast.MemberMethod:
			hasMethod = true
		case ast.MemberProperty:
			hasProp = true
		}
	}
	if !hasCtor || !hasMethod || !hasProp {
		t.Errorf("expected a constructor, a method, and a property; got %+v", class.Members)
	}
}

func TestParseTemplateString(t *testing.T) {
	prog := parse(t, "`hi $@name#!`")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	tmpl, ok := stmt.Expr.(*ast.TemplateStringExpr)
	if !ok {
		t.Fatalf("expected *ast.TemplateStringExpr, got %T", stmt.Expr)
	}
	if len(tmpl.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %+v", len(tmpl.Parts), tmpl.Parts)
	}
	if tmpl.Parts[0].Literal != "hi " {
		t.Errorf("expected first part to be the literal %q, got %+v", "hi ", tmpl.Parts[0])
	}
	if tmpl.Parts[1].Expr == nil {
		t.Error("expected the second part to be the interpolated expression")
	}
	if tmpl.Parts[2].Literal != "!" {
		t.Errorf("expected third part to be the literal %q, got %+v", "!", tmpl.Parts[2])
	}
}

func TestParseImportForms(t *testing.T) {
	tests := []struct {
		source   string
		wildcard bool
		items    int
		alias    string
	}{
		{`grab * from math`, true, 0, ""},
		{`grab sqrt, pow from math`, false, 2, ""},
		{`grab math as m`, false, 0, "m"},
	}
	for _, tt := range tests {
		prog := parse(t, tt.source)
		imp, ok := prog.Statements[0].(*ast.ImportStmt)
		if !ok {
			t.Fatalf("%q: expected *ast.ImportStmt, got %T", tt.source, prog.Statements[0])
		}
		if imp.Wildcard != tt.wildcard || len(imp.Items) != tt.items || imp.Alias != tt.alias {
			t.Errorf("%q: got wildcard=%v items=%d alias=%q", tt.source, imp.Wildcard, len(imp.Items), imp.Alias)
		}
	}
}
