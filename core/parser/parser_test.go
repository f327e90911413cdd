package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggdaltoso/aleph.js/core/jsast"
)

func parse(t *testing.T, src string) *jsast.Module {
	t.Helper()
	m, err := ParseModule(context.Background(), []byte(src))
	require.NoError(t, err)
	return m
}

func TestParseFunctionDeclaration(t *testing.T) {
	m := parse(t, `function Counter(props) {
  const [n,setN] = useState(0);
  return null;
}
`)
	require.Len(t, m.Body, 1)

	fd, ok := m.Body[0].(*jsast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "Counter", fd.Name.Name)
	require.Len(t, fd.Fn.Params, 1)
	assert.Equal(t, "props", fd.Fn.Params[0].Text())

	require.Len(t, fd.Fn.Body.Stmts, 2)
	vd, ok := fd.Fn.Body.Stmts[0].(*jsast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "const", vd.Kind)
	require.Len(t, vd.Decls, 1)
	assert.Equal(t, "[n,setN]", vd.Decls[0].ID.Text())

	call, ok := vd.Decls[0].Init.(*jsast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "useState(0)", call.Raw)
	require.Len(t, call.Args, 1)
	assert.Equal(t, "0", call.Args[0].Text())
}

func TestParseArrowInitializer(t *testing.T) {
	m := parse(t, "const App = async () => {\n  return null;\n};\n")
	vd, ok := m.Body[0].(*jsast.VarDecl)
	require.True(t, ok)

	fe, ok := vd.Decls[0].Init.(*jsast.FuncExpr)
	require.True(t, ok)
	assert.True(t, fe.Fn.Arrow)
	assert.True(t, fe.Fn.Async)
	assert.NotNil(t, fe.Fn.Body)
	assert.Nil(t, fe.Fn.Concise)
}

func TestParseConciseArrow(t *testing.T) {
	m := parse(t, "const double = (x) => x * 2;\n")
	vd := m.Body[0].(*jsast.VarDecl)
	fe, ok := vd.Decls[0].Init.(*jsast.FuncExpr)
	require.True(t, ok)
	assert.Nil(t, fe.Fn.Body)
	require.NotNil(t, fe.Fn.Concise)
	assert.Equal(t, "x * 2", fe.Fn.Concise.Text())
}

func TestParseImportBindings(t *testing.T) {
	m := parse(t, `import React, { useState, useStore as useAppStore } from "react";
import * as NS from "./ns.js";
`)
	require.Len(t, m.Body, 2)

	d1, ok := m.Body[0].(*jsast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, "react", d1.Source)
	require.NotNil(t, d1.Default)
	assert.Equal(t, "React", d1.Default.Name)
	require.Len(t, d1.Named, 2)
	assert.Equal(t, "useState", d1.Named[0].Local.Name)
	assert.Equal(t, "useStore", d1.Named[1].Imported)
	assert.Equal(t, "useAppStore", d1.Named[1].Local.Name)

	d2, ok := m.Body[1].(*jsast.ImportDecl)
	require.True(t, ok)
	require.NotNil(t, d2.Namespace)
	assert.Equal(t, "NS", d2.Namespace.Name)
}

func TestParseMemberCall(t *testing.T) {
	m := parse(t, "React.useEffect(fn);\n")
	es := m.Body[0].(*jsast.ExprStmt)
	call, ok := es.X.(*jsast.CallExpr)
	require.True(t, ok)
	member, ok := call.Callee.(*jsast.MemberExpr)
	require.True(t, ok)
	assert.Equal(t, "useEffect", member.Property)
	assert.Equal(t, "React", member.Object.Text())
}

func TestParseOptionalChainFallsBackToRaw(t *testing.T) {
	m := parse(t, "obj?.useThing();\n")
	es := m.Body[0].(*jsast.ExprStmt)
	call, ok := es.X.(*jsast.CallExpr)
	require.True(t, ok)
	_, isRaw := call.Callee.(*jsast.RawExpr)
	assert.True(t, isRaw)
}

func TestParseUnmodeledStatementsBecomeRaw(t *testing.T) {
	m := parse(t, `class Store {}
for (let i = 0; i < 3; i++) {
  tick(i);
}
`)
	require.Len(t, m.Body, 2)
	rs, ok := m.Body[0].(*jsast.RawStmt)
	require.True(t, ok)
	assert.Equal(t, "class Store {}", rs.Src)
	_, ok = m.Body[1].(*jsast.RawStmt)
	assert.True(t, ok)
}

func TestParseCommentAttachment(t *testing.T) {
	m := parse(t, `// @refresh reset
// second line
function App() {
  return null;
}
`)
	require.Len(t, m.Body, 1)
	comments := m.Body[0].LeadingComments()
	require.Len(t, comments, 2)
	assert.Equal(t, "// @refresh reset", comments[0].Text)
	assert.Equal(t, "// second line", comments[1].Text)
}

func TestParseExportStatement(t *testing.T) {
	m := parse(t, `export default function App() {
  return null;
}
export const useStore = () => ({});
`)
	require.Len(t, m.Body, 2)

	e1, ok := m.Body[0].(*jsast.ExportStmt)
	require.True(t, ok)
	assert.True(t, e1.Default)
	fd, ok := e1.Decl.(*jsast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "App", fd.Name.Name)

	e2, ok := m.Body[1].(*jsast.ExportStmt)
	require.True(t, ok)
	assert.False(t, e2.Default)
	_, ok = e2.Decl.(*jsast.VarDecl)
	assert.True(t, ok)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := ParseModule(context.Background(), []byte("function ("))
	assert.Error(t, err)
}
