package jsast

import "strings"

// Print serializes a module back to JavaScript source.
//
// Statements carried as raw text are replayed verbatim; modeled statements
// are printed structurally, which is what lets rewritten function bodies
// pick up their injected statements.
func Print(m *Module) string {
	p := &printer{}
	for _, s := range m.Body {
		p.stmt(s)
	}
	return p.b.String()
}

func printExpr(e Expr) string {
	p := &printer{}
	return p.expr(e)
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) indentStr() string {
	return strings.Repeat("  ", p.indent)
}

func (p *printer) stmt(s Stmt) {
	for _, c := range s.LeadingComments() {
		p.b.WriteString(p.indentStr())
		p.b.WriteString(c.Text)
		p.b.WriteString("\n")
	}
	p.b.WriteString(p.indentStr())
	p.stmtBody(s)
}

// stmtBody writes a statement from the current position, ending with a
// newline. Indentation of the first line is the caller's job so that
// export wrappers can prefix it.
func (p *printer) stmtBody(s Stmt) {
	switch v := s.(type) {
	case *RawStmt:
		lines := strings.Split(v.Src, "\n")
		p.b.WriteString(lines[0])
		for _, l := range lines[1:] {
			p.b.WriteString("\n")
			p.b.WriteString(l)
		}
		p.b.WriteString("\n")
	case *ImportDecl:
		if v.Raw != "" {
			p.b.WriteString(v.Raw)
		} else {
			p.b.WriteString(importText(v))
		}
		p.b.WriteString("\n")
	case *FuncDecl:
		p.b.WriteString(p.funcText(v.Name, v.Fn))
		p.b.WriteString("\n")
	case *VarDecl:
		p.b.WriteString(v.Kind)
		p.b.WriteString(" ")
		for i, d := range v.Decls {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.b.WriteString(d.ID.Text())
			if d.Init != nil {
				p.b.WriteString(" = ")
				p.b.WriteString(p.expr(d.Init))
			}
		}
		p.b.WriteString(";\n")
	case *ExportStmt:
		p.b.WriteString("export ")
		if v.Default {
			p.b.WriteString("default ")
		}
		p.stmtBody(v.Decl)
	case *ExprStmt:
		p.b.WriteString(p.expr(v.X))
		p.b.WriteString(";\n")
	case *ReturnStmt:
		p.b.WriteString("return")
		if v.X != nil {
			p.b.WriteString(" ")
			p.b.WriteString(p.expr(v.X))
		}
		p.b.WriteString(";\n")
	default:
		// Unknown statement kinds have no source to replay; emit nothing.
	}
}

func (p *printer) expr(e Expr) string {
	switch v := e.(type) {
	case *FuncExpr:
		// Always printed structurally: the body may have been rewritten
		// after parsing, which would make the captured raw text stale.
		return p.funcText(v.Fn.Name, v.Fn)
	case *CallExpr:
		if v.Raw != "" {
			return v.Raw
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = p.expr(a)
		}
		return p.expr(v.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ArrayLit:
		if v.Raw != "" {
			return v.Raw
		}
		elems := make([]string, len(v.Elems))
		for i, el := range v.Elems {
			elems[i] = p.expr(el)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	default:
		return e.Text()
	}
}

func (p *printer) funcText(name *Ident, fn *Function) string {
	var b strings.Builder
	if fn.Async {
		b.WriteString("async ")
	}
	if !fn.Arrow {
		b.WriteString("function")
		if name != nil {
			b.WriteString(" ")
			b.WriteString(name.Name)
		}
	}
	b.WriteString("(")
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Text())
	}
	b.WriteString(")")
	if fn.Arrow {
		b.WriteString(" =>")
	}
	if fn.Concise != nil {
		b.WriteString(" ")
		b.WriteString(p.expr(fn.Concise))
		return b.String()
	}
	b.WriteString(" ")
	b.WriteString(p.blockText(fn.Body))
	return b.String()
}

func (p *printer) blockText(block *Block) string {
	if block == nil || len(block.Stmts) == 0 {
		return "{}"
	}
	inner := &printer{indent: p.indent + 1}
	for _, s := range block.Stmts {
		inner.stmt(s)
	}
	return "{\n" + inner.b.String() + p.indentStr() + "}"
}

func importText(d *ImportDecl) string {
	var clauses []string
	if d.Default != nil {
		clauses = append(clauses, d.Default.Name)
	}
	if d.Namespace != nil {
		clauses = append(clauses, "* as "+d.Namespace.Name)
	}
	if len(d.Named) > 0 {
		specs := make([]string, len(d.Named))
		for i, s := range d.Named {
			if s.Local != nil && s.Local.Name != s.Imported {
				specs[i] = s.Imported + " as " + s.Local.Name
			} else {
				specs[i] = s.Imported
			}
		}
		clauses = append(clauses, "{ "+strings.Join(specs, ", ")+" }")
	}
	if len(clauses) == 0 {
		return "import \"" + d.Source + "\";"
	}
	return "import " + strings.Join(clauses, ", ") + " from \"" + d.Source + "\";"
}
