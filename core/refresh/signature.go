package refresh

import (
	"fmt"
	"regexp"

	"github.com/ggdaltoso/aleph.js/core/jsast"
)

// resolveCustomHooks runs after the full module scan, once the hook-name
// set is complete, and filters each signature's custom hooks down to names
// actually bound at the top level. A hook the module never declares or
// imports cannot be tracked across edits, so dropping one conservatively
// forces a reset.
func (t *transformer) resolveCustomHooks() {
	for _, sig := range t.ordered {
		kept := make([]string, 0, len(sig.customHooks))
		for _, h := range sig.customHooks {
			if _, ok := t.hookNames[h]; ok {
				kept = append(kept, h)
			}
		}
		if len(kept) < len(sig.customHooks) {
			sig.forceReset = true
		}
		sig.customHooks = kept
	}
}

var identRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)

// nameGen mints signature identifiers guaranteed not to collide with any
// identifier spelled anywhere in the module: a reserved `_s` prefix plus a
// monotonic counter, checked against a pre-collected name set. Raw source
// fragments are scanned for identifier-shaped words, which over-collects
// (string contents count too) but can only make the generator skip further.
type nameGen struct {
	used  map[string]struct{}
	count int
}

func newNameGen(m *jsast.Module) *nameGen {
	g := &nameGen{used: make(map[string]struct{})}
	for _, s := range m.Body {
		g.collectStmt(s)
	}
	return g
}

func (g *nameGen) fresh() string {
	for {
		g.count++
		name := "_s"
		if g.count > 1 {
			name = fmt.Sprintf("_s%d", g.count)
		}
		if _, taken := g.used[name]; !taken {
			g.used[name] = struct{}{}
			return name
		}
	}
}

func (g *nameGen) words(src string) {
	for _, w := range identRe.FindAllString(src, -1) {
		g.used[w] = struct{}{}
	}
}

func (g *nameGen) collectStmt(s jsast.Stmt) {
	switch v := s.(type) {
	case *jsast.RawStmt:
		g.words(v.Src)
	case *jsast.FuncDecl:
		if v.Name != nil {
			g.used[v.Name.Name] = struct{}{}
		}
		if v.Fn != nil {
			g.collectFn(v.Fn)
		}
	case *jsast.VarDecl:
		for _, d := range v.Decls {
			g.words(d.ID.Text())
			g.collectExpr(d.Init)
		}
	case *jsast.ImportDecl:
		if v.Raw != "" {
			g.words(v.Raw)
		}
		if v.Default != nil {
			g.used[v.Default.Name] = struct{}{}
		}
		if v.Namespace != nil {
			g.used[v.Namespace.Name] = struct{}{}
		}
		for _, spec := range v.Named {
			if spec.Local != nil {
				g.used[spec.Local.Name] = struct{}{}
			}
		}
	case *jsast.ExportStmt:
		if v.Decl != nil {
			g.collectStmt(v.Decl)
		}
	case *jsast.ExprStmt:
		g.collectExpr(v.X)
	case *jsast.ReturnStmt:
		g.collectExpr(v.X)
	}
}

func (g *nameGen) collectExpr(e jsast.Expr) {
	switch v := e.(type) {
	case nil:
		return
	case *jsast.Ident:
		g.used[v.Name] = struct{}{}
	case *jsast.RawExpr:
		g.words(v.Src)
	case *jsast.CallExpr:
		if v.Raw != "" {
			g.words(v.Raw)
			return
		}
		g.collectExpr(v.Callee)
		for _, a := range v.Args {
			g.collectExpr(a)
		}
	case *jsast.MemberExpr:
		if v.Raw != "" {
			g.words(v.Raw)
			return
		}
		g.collectExpr(v.Object)
		g.used[v.Property] = struct{}{}
	case *jsast.ArrayLit:
		if v.Raw != "" {
			g.words(v.Raw)
			return
		}
		for _, el := range v.Elems {
			g.collectExpr(el)
		}
	case *jsast.FuncExpr:
		if v.Raw != "" {
			g.words(v.Raw)
			return
		}
		if v.Fn != nil {
			g.collectFn(v.Fn)
		}
	}
}

func (g *nameGen) collectFn(fn *jsast.Function) {
	if fn.Name != nil {
		g.used[fn.Name.Name] = struct{}{}
	}
	for _, p := range fn.Params {
		g.words(p.Text())
	}
	if fn.Concise != nil {
		g.collectExpr(fn.Concise)
	}
	if fn.Body != nil {
		for _, s := range fn.Body.Stmts {
			g.collectStmt(s)
		}
	}
}
