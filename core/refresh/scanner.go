package refresh

import "github.com/ggdaltoso/aleph.js/core/jsast"

// scan walks the top-level statements in order, classifying each as
// component-like, hook-like, import or other, and feeding eligible function
// bodies to the analyzer. Exported declarations are classified through
// their wrapper; the wrapper statement stays in place.
func (t *transformer) scan(m *jsast.Module) {
	for _, stmt := range m.Body {
		t.scanStmt(stmt)
	}
}

func (t *transformer) scanStmt(stmt jsast.Stmt) {
	inner := stmt
	if ex, ok := stmt.(*jsast.ExportStmt); ok {
		inner = ex.Decl
	}

	switch v := inner.(type) {
	case *jsast.FuncDecl:
		if v.Name == nil || v.Fn == nil {
			return
		}
		t.classify(v.Name.Name, v.Fn, stmt)
	case *jsast.VarDecl:
		for _, d := range v.Decls {
			name, ok := d.ID.(*jsast.Ident)
			if !ok {
				continue
			}
			fe, ok := d.Init.(*jsast.FuncExpr)
			if !ok || fe.Fn == nil {
				continue
			}
			t.classify(name.Name, fe.Fn, stmt)
		}
	case *jsast.ImportDecl:
		// Default and named bindings can re-export hooks under local
		// names; both feed the hook-name set.
		if v.Default != nil && isHookName(v.Default.Name) {
			t.hookNames[v.Default.Name] = struct{}{}
		}
		for _, spec := range v.Named {
			if spec.Local != nil && isHookName(spec.Local.Name) {
				t.hookNames[spec.Local.Name] = struct{}{}
			}
		}
	}
}

// classify records the binding's component/hook nature and, when the
// function has a block body with hook call sites, mints its signature.
// The directive is read off the defining statement, which for exported
// declarations is the export wrapper carrying the comments.
func (t *transformer) classify(name string, fn *jsast.Function, stmt jsast.Stmt) {
	if isComponentName(name) {
		t.components = append(t.components, name)
	}
	if isHookName(name) {
		t.hookNames[name] = struct{}{}
	}

	// Concise expression-bodied arrows have nowhere to inject the
	// signature call; they are never signable.
	if fn.Body == nil {
		return
	}
	hc := analyzeHookCalls(fn.Body)
	if hc == nil {
		return
	}

	sig := &signature{
		id:          t.names.fresh(),
		fnName:      name,
		fn:          fn,
		key:         hc.signatureKey(),
		customHooks: hc.customHooks,
		forceReset:  hasForceResetDirective(stmt),
	}
	t.sigs[fn] = sig
	t.ordered = append(t.ordered, sig)
	t.byStmt[stmt] = append(t.byStmt[stmt], fn)
}
