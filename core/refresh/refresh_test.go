package refresh_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ggdaltoso/aleph.js/core/jsast"
	"github.com/ggdaltoso/aleph.js/core/parser"
	"github.com/ggdaltoso/aleph.js/core/refresh"
)

func transformSource(t *testing.T, src string) string {
	t.Helper()
	mod, err := parser.ParseModule(context.Background(), []byte(src))
	require.NoError(t, err)
	out := refresh.Transform(mod, refresh.Options{})
	return jsast.Print(out)
}

func TestTransformCounterEndToEnd(t *testing.T) {
	src := `function Counter() {
  const [n,setN] = useState(0);
  useMyHook();
  return null;
}
function useMyHook() {
  return 1;
}
`
	got := transformSource(t, src)

	want := `var _s = $RefreshSig$();
function Counter() {
  _s();
  const [n,setN] = useState(0);
  useMyHook();
  return null;
}
_s(Counter, "useState{[n,setN](0)}\nuseMyHook{}", false, () => [useMyHook]);
function useMyHook() {
  return 1;
}
$RefreshReg$(Counter, "Counter");
`
	require.Equal(t, want, got)
}

func TestTransformNoHookCallsEmitsNoSignature(t *testing.T) {
	src := `function Header() {
  return null;
}
`
	got := transformSource(t, src)

	require.NotContains(t, got, "$RefreshSig$")
	require.Contains(t, got, `$RefreshReg$(Header, "Header");`)
}

func TestTransformRegistersEveryComponent(t *testing.T) {
	src := `function App() {
  return null;
}
const Sidebar = () => {
  return null;
};
function helper() {
  return 1;
}
`
	got := transformSource(t, src)

	require.Contains(t, got, `$RefreshReg$(App, "App");`)
	require.Contains(t, got, `$RefreshReg$(Sidebar, "Sidebar");`)
	require.NotContains(t, got, `helper, "helper"`)
	require.Less(t, strings.Index(got, `$RefreshReg$(App`), strings.Index(got, `$RefreshReg$(Sidebar`))
}

func TestTransformReorderingHookCallsChangesKey(t *testing.T) {
	a := transformSource(t, `function App() {
  const a = useState(1);
  const b = useRef();
  return null;
}
`)
	b := transformSource(t, `function App() {
  const b = useRef();
  const a = useState(1);
  return null;
}
`)
	require.Contains(t, a, `"useState{a(1)}\nuseRef{b}"`)
	require.Contains(t, b, `"useRef{b}\nuseState{a(1)}"`)
}

func TestTransformStateSeedArgumentChangesKey(t *testing.T) {
	a := transformSource(t, `function App() {
  const [n,setN] = useState(0);
  return null;
}
`)
	b := transformSource(t, `function App() {
  const [n,setN] = useState(42);
  return null;
}
`)
	require.Contains(t, a, `"useState{[n,setN](0)}"`)
	require.Contains(t, b, `"useState{[n,setN](42)}"`)
}

func TestTransformReducerSecondArgumentKeyed(t *testing.T) {
	got := transformSource(t, `function App() {
  const [state,dispatch] = useReducer(reducer, initialState);
  return null;
}
`)
	require.Contains(t, got, `"useReducer{[state,dispatch](initialState)}"`)
}

func TestTransformForceResetDirective(t *testing.T) {
	got := transformSource(t, `// @refresh reset
function App() {
  const [n,setN] = useState(0);
  return null;
}
`)
	require.Contains(t, got, `_s(App, "useState{[n,setN](0)}", true);`)
	// The directive comment itself stays in the output.
	require.Contains(t, got, "// @refresh reset")
}

func TestTransformUnresolvedCustomHookForcesReset(t *testing.T) {
	got := transformSource(t, `function App() {
  useUnknownHook();
  return null;
}
`)
	// The unresolved hook is dropped from the custom-hooks list and the
	// signature conservatively forces a reset.
	require.Contains(t, got, `_s(App, "useUnknownHook{}", true);`)
	require.NotContains(t, got, "=> [")
}

func TestTransformImportedHooksResolve(t *testing.T) {
	got := transformSource(t, `import useSWR from "swr";
import { useStore as useAppStore } from "./store.js";
function App() {
  const data = useSWR("/api");
  const store = useAppStore();
  return null;
}
`)
	require.Contains(t, got, `_s(App, "useSWR{data}\nuseAppStore{store}", false, () => [useSWR, useAppStore]);`)
}

func TestTransformNamespaceBuiltinHook(t *testing.T) {
	got := transformSource(t, `import React from "react";
function App() {
  const [n,setN] = React.useState(0);
  React.useEffect(fn);
  return null;
}
`)
	require.Contains(t, got, `_s(App, "useState{[n,setN](0)}\nuseEffect{}");`)
}

func TestTransformConciseArrowNeverSigned(t *testing.T) {
	got := transformSource(t, `const Badge = () => useMemo(compute);
`)
	require.NotContains(t, got, "$RefreshSig$")
	require.Contains(t, got, `$RefreshReg$(Badge, "Badge");`)
}

func TestTransformMultiDeclaratorStatement(t *testing.T) {
	got := transformSource(t, `const Panel = () => {
  const [open,setOpen] = useState(false);
  return null;
}, label = "panel";
`)
	require.Contains(t, got, `_s(Panel, "useState{[open,setOpen](false)}");`)
	// The unsigned sibling declarator is untouched.
	require.Contains(t, got, `label = "panel"`)
	// The recording call lands after the whole variable statement.
	require.Less(t, strings.Index(got, `label = "panel"`), strings.Index(got, `_s(Panel`))
}

func TestTransformExportedComponent(t *testing.T) {
	got := transformSource(t, `export default function App() {
  const [n,setN] = useState(0);
  return null;
}
`)
	require.Contains(t, got, "export default function App() {")
	require.Contains(t, got, `_s(App, "useState{[n,setN](0)}");`)
	require.Contains(t, got, `$RefreshReg$(App, "App");`)
	// The recording call follows the export statement, not the reverse.
	require.Less(t, strings.Index(got, "export default"), strings.Index(got, "_s(App,"))
}

func TestTransformPreservesUnrelatedStatements(t *testing.T) {
	src := `const limit = 10;
class Store {
  get() { return 1; }
}
function App() {
  const [n,setN] = useState(limit);
  return null;
}
if (limit > 5) {
  console.log(limit);
}
`
	got := transformSource(t, src)

	require.Contains(t, got, "const limit = 10;")
	require.Contains(t, got, "class Store {")
	require.Contains(t, got, "if (limit > 5) {")
	// Relative order of unrelated statements is untouched.
	require.Less(t, strings.Index(got, "const limit"), strings.Index(got, "class Store"))
	require.Less(t, strings.Index(got, "class Store"), strings.Index(got, "function App"))
	require.Less(t, strings.Index(got, "function App"), strings.Index(got, "if (limit > 5)"))
}

func TestTransformFreshIdentifiersAvoidCollisions(t *testing.T) {
	got := transformSource(t, `const _s = 1;
function App() {
  const [n,setN] = useState(0);
  return null;
}
`)
	require.Contains(t, got, "var _s2 = $RefreshSig$();")
	require.Contains(t, got, `_s2(App, "useState{[n,setN](0)}");`)
}

func TestTransformDeterministic(t *testing.T) {
	src := `function Counter() {
  const [n,setN] = useState(0);
  useMyHook();
  return null;
}
function useMyHook() {
  return 1;
}
`
	first := transformSource(t, src)
	second := transformSource(t, src)
	require.Equal(t, first, second)
}

func TestTransformCustomRuntimeEntryPoints(t *testing.T) {
	mod, err := parser.ParseModule(context.Background(), []byte(`function App() {
  const [n,setN] = useState(0);
  return null;
}
`))
	require.NoError(t, err)
	out := refresh.Transform(mod, refresh.Options{
		RegFunc: "$reg$",
		SigFunc: "$sig$",
	})
	got := jsast.Print(out)

	require.Contains(t, got, "var _s = $sig$();")
	require.Contains(t, got, `$reg$(App, "App");`)
	require.NotContains(t, got, "$RefreshReg$")
}
