// Package parser lowers tree-sitter JavaScript parse trees to the jsast
// module representation.
//
// Only the statement and expression shapes the refresh transform cares
// about are modeled; everything else is captured as raw source text and
// travels through the transform untouched.
package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/ggdaltoso/aleph.js/core/jsast"
)

// ParseModule parses JavaScript source into a jsast.Module.
func ParseModule(ctx context.Context, src []byte) (*jsast.Module, error) {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax error in module")
	}

	c := &converter{src: src}
	return &jsast.Module{Body: c.stmtList(root)}, nil
}

type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

// stmtList converts the named children of a program or statement_block,
// attaching each run of comments to the statement that follows it.
func (c *converter) stmtList(n *sitter.Node) []jsast.Stmt {
	var stmts []jsast.Stmt
	var pending []jsast.Comment

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			pending = append(pending, jsast.Comment{Text: c.text(child)})
			continue
		}
		s := c.stmt(child)
		if s == nil {
			continue
		}
		if len(pending) > 0 {
			s.SetLeading(pending)
			pending = nil
		}
		stmts = append(stmts, s)
	}

	// Trailing comments belong to no statement; replay them verbatim.
	for _, cm := range pending {
		stmts = append(stmts, &jsast.RawStmt{Src: cm.Text})
	}
	return stmts
}

func (c *converter) stmt(n *sitter.Node) jsast.Stmt {
	switch n.Type() {
	case "function_declaration":
		name := n.ChildByFieldName("name")
		fn := c.function(n)
		if name == nil || fn == nil {
			return &jsast.RawStmt{Src: c.text(n)}
		}
		return &jsast.FuncDecl{Name: &jsast.Ident{Name: c.text(name)}, Fn: fn}
	case "lexical_declaration", "variable_declaration":
		return c.varDecl(n)
	case "import_statement":
		return c.importDecl(n)
	case "export_statement":
		return c.exportStmt(n)
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return &jsast.RawStmt{Src: c.text(n)}
		}
		return &jsast.ExprStmt{X: c.expr(n.NamedChild(0))}
	case "return_statement":
		var x jsast.Expr
		if n.NamedChildCount() > 0 {
			x = c.expr(n.NamedChild(0))
		}
		return &jsast.ReturnStmt{X: x}
	default:
		return &jsast.RawStmt{Src: c.text(n)}
	}
}

func (c *converter) varDecl(n *sitter.Node) jsast.Stmt {
	kind := "var"
	if n.ChildCount() > 0 {
		switch n.Child(0).Type() {
		case "let":
			kind = "let"
		case "const":
			kind = "const"
		}
	}

	var decls []*jsast.Declarator
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			return &jsast.RawStmt{Src: c.text(n)}
		}
		d := &jsast.Declarator{ID: c.pattern(name)}
		if value := child.ChildByFieldName("value"); value != nil {
			d.Init = c.expr(value)
		}
		decls = append(decls, d)
	}
	if len(decls) == 0 {
		return &jsast.RawStmt{Src: c.text(n)}
	}
	return &jsast.VarDecl{Kind: kind, Decls: decls}
}

func (c *converter) importDecl(n *sitter.Node) jsast.Stmt {
	d := &jsast.ImportDecl{Raw: c.text(n)}
	if source := n.ChildByFieldName("source"); source != nil {
		d.Source = strings.Trim(c.text(source), "\"'`")
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			clause := child.NamedChild(j)
			switch clause.Type() {
			case "identifier":
				d.Default = &jsast.Ident{Name: c.text(clause)}
			case "namespace_import":
				for k := 0; k < int(clause.NamedChildCount()); k++ {
					if clause.NamedChild(k).Type() == "identifier" {
						d.Namespace = &jsast.Ident{Name: c.text(clause.NamedChild(k))}
					}
				}
			case "named_imports":
				for k := 0; k < int(clause.NamedChildCount()); k++ {
					spec := clause.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					name := spec.ChildByFieldName("name")
					if name == nil {
						continue
					}
					is := jsast.ImportSpec{Imported: c.text(name)}
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						is.Local = &jsast.Ident{Name: c.text(alias)}
					} else {
						is.Local = &jsast.Ident{Name: is.Imported}
					}
					d.Named = append(d.Named, is)
				}
			}
		}
	}
	return d
}

func (c *converter) exportStmt(n *sitter.Node) jsast.Stmt {
	decl := n.ChildByFieldName("declaration")
	if decl == nil {
		return &jsast.RawStmt{Src: c.text(n)}
	}
	switch decl.Type() {
	case "function_declaration", "lexical_declaration", "variable_declaration":
	default:
		return &jsast.RawStmt{Src: c.text(n)}
	}
	inner := c.stmt(decl)
	isDefault := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "default" {
			isDefault = true
		}
	}
	return &jsast.ExportStmt{Default: isDefault, Decl: inner}
}

// function converts any function-shaped node: declarations, function
// expressions and arrows. Returns nil when the node has no usable shape.
func (c *converter) function(n *sitter.Node) *jsast.Function {
	fn := &jsast.Function{}
	if n.ChildCount() > 0 && n.Child(0).Type() == "async" {
		fn.Async = true
	}
	if n.Type() == "arrow_function" {
		fn.Arrow = true
	}
	if name := n.ChildByFieldName("name"); name != nil && n.Type() != "function_declaration" {
		fn.Name = &jsast.Ident{Name: c.text(name)}
	}

	if param := n.ChildByFieldName("parameter"); param != nil {
		fn.Params = []jsast.Pattern{c.pattern(param)}
	} else if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			fn.Params = append(fn.Params, c.pattern(params.NamedChild(i)))
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	if body.Type() == "statement_block" {
		fn.Body = &jsast.Block{Stmts: c.stmtList(body)}
	} else {
		fn.Concise = c.expr(body)
	}
	return fn
}

func (c *converter) pattern(n *sitter.Node) jsast.Pattern {
	if n.Type() == "identifier" {
		return &jsast.Ident{Name: c.text(n)}
	}
	return &jsast.RawPattern{Src: c.text(n)}
}

func (c *converter) expr(n *sitter.Node) jsast.Expr {
	switch n.Type() {
	case "identifier":
		return &jsast.Ident{Name: c.text(n)}
	case "string":
		raw := c.text(n)
		return &jsast.StringLit{Value: strings.Trim(raw, "\"'`"), Raw: raw}
	case "number":
		return &jsast.NumberLit{Raw: c.text(n)}
	case "true":
		return &jsast.BoolLit{Value: true}
	case "false":
		return &jsast.BoolLit{Value: false}
	case "call_expression":
		callee := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if callee == nil || args == nil || args.Type() != "arguments" {
			return &jsast.RawExpr{Src: c.text(n)}
		}
		call := &jsast.CallExpr{Callee: c.expr(callee), Raw: c.text(n)}
		for i := 0; i < int(args.NamedChildCount()); i++ {
			if args.NamedChild(i).Type() == "comment" {
				continue
			}
			call.Args = append(call.Args, c.expr(args.NamedChild(i)))
		}
		return call
	case "member_expression":
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "optional_chain" {
				return &jsast.RawExpr{Src: c.text(n)}
			}
		}
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil {
			return &jsast.RawExpr{Src: c.text(n)}
		}
		return &jsast.MemberExpr{
			Object:   c.expr(obj),
			Property: c.text(prop),
			Raw:      c.text(n),
		}
	case "arrow_function", "function_expression", "function", "generator_function":
		fn := c.function(n)
		if fn == nil {
			return &jsast.RawExpr{Src: c.text(n)}
		}
		return &jsast.FuncExpr{Fn: fn, Raw: c.text(n)}
	case "array":
		arr := &jsast.ArrayLit{Raw: c.text(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "comment" {
				continue
			}
			arr.Elems = append(arr.Elems, c.expr(n.NamedChild(i)))
		}
		return arr
	default:
		return &jsast.RawExpr{Src: c.text(n)}
	}
}
