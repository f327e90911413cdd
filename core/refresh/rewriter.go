package refresh

import "github.com/ggdaltoso/aleph.js/core/jsast"

// rewrite assembles the output statement sequence: the signature prologue,
// the original statements in order with recording calls inserted right
// after each defining statement, and one registration call per component.
func (t *transformer) rewrite(m *jsast.Module) *jsast.Module {
	out := make([]jsast.Stmt, 0, len(m.Body)+len(t.ordered)+len(t.components)+1)

	if len(t.ordered) > 0 {
		out = append(out, t.signatureProlog())
	}

	for _, stmt := range m.Body {
		out = append(out, stmt)
		for _, fn := range t.byStmt[stmt] {
			sig := t.sigs[fn]
			t.injectSignatureCall(sig)
			out = append(out, t.recordStmt(sig))
		}
	}

	for _, name := range t.components {
		out = append(out, t.registerStmt(name))
	}

	return &jsast.Module{Body: out}
}

// signatureProlog is the combined `var _s = $RefreshSig$(), ...` declaration
// prepended when any signature was synthesized.
func (t *transformer) signatureProlog() jsast.Stmt {
	decls := make([]*jsast.Declarator, len(t.ordered))
	for i, sig := range t.ordered {
		decls[i] = &jsast.Declarator{
			ID:   &jsast.Ident{Name: sig.id},
			Init: &jsast.CallExpr{Callee: &jsast.Ident{Name: t.opts.SigFunc}},
		}
	}
	return &jsast.VarDecl{Kind: "var", Decls: decls}
}

// injectSignatureCall makes `_s();` the body's first statement, marking for
// the runtime that this version of the function is executing so hook-call
// order can be correlated across reload generations.
func (t *transformer) injectSignatureCall(sig *signature) {
	call := &jsast.ExprStmt{X: &jsast.CallExpr{Callee: &jsast.Ident{Name: sig.id}}}
	body := sig.fn.Body
	body.Stmts = append([]jsast.Stmt{call}, body.Stmts...)
}

// recordStmt is `_s(Fn, key[, forceReset][, () => [hooks...]])`. Trailing
// arguments are omitted when not needed; forceReset is still passed when a
// custom-hooks closure follows, since the arguments are positional.
func (t *transformer) recordStmt(sig *signature) jsast.Stmt {
	args := []jsast.Expr{
		&jsast.Ident{Name: sig.fnName},
		&jsast.StringLit{Value: sig.key},
	}
	if sig.forceReset || len(sig.customHooks) > 0 {
		args = append(args, &jsast.BoolLit{Value: sig.forceReset})
	}
	if len(sig.customHooks) > 0 {
		elems := make([]jsast.Expr, len(sig.customHooks))
		for i, h := range sig.customHooks {
			elems[i] = &jsast.Ident{Name: h}
		}
		args = append(args, &jsast.FuncExpr{Fn: &jsast.Function{
			Arrow:   true,
			Concise: &jsast.ArrayLit{Elems: elems},
		}})
	}
	return &jsast.ExprStmt{X: &jsast.CallExpr{
		Callee: &jsast.Ident{Name: sig.id},
		Args:   args,
	}}
}

// registerStmt is `$RefreshReg$(Comp, "Comp")`.
func (t *transformer) registerStmt(name string) jsast.Stmt {
	return &jsast.ExprStmt{X: &jsast.CallExpr{
		Callee: &jsast.Ident{Name: t.opts.RegFunc},
		Args: []jsast.Expr{
			&jsast.Ident{Name: name},
			&jsast.StringLit{Value: name},
		},
	}}
}
