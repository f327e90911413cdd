package refresh

import (
	"strings"

	"github.com/ggdaltoso/aleph.js/core/jsast"
)

// builtinHooks are the runtime's own hooks. They never count as custom
// dependencies, whether called bare or as NS.useXxx.
var builtinHooks = map[string]struct{}{
	"useState":            {},
	"useReducer":          {},
	"useEffect":           {},
	"useLayoutEffect":     {},
	"useMemo":             {},
	"useCallback":         {},
	"useRef":              {},
	"useContext":          {},
	"useImperativeHandle": {},
	"useDebugValue":       {},
}

type hookCall struct {
	name string
	key  string
}

type hookCalls struct {
	calls       []hookCall
	customHooks []string
}

// analyzeHookCalls shallow-scans the direct statements of a function body
// for hook invocations. It never recurses into nested blocks, conditionals
// or inner functions: a missed call is acceptable, a fabricated one is not.
// Returns nil when no call sites are found.
func analyzeHookCalls(body *jsast.Block) *hookCalls {
	if body == nil {
		return nil
	}
	hc := &hookCalls{}
	for _, s := range body.Stmts {
		switch v := s.(type) {
		case *jsast.VarDecl:
			single := len(v.Decls) == 1
			for _, d := range v.Decls {
				call, ok := d.Init.(*jsast.CallExpr)
				if !ok {
					continue
				}
				bindingKey := ""
				if single {
					bindingKey = d.ID.Text()
				}
				hc.add(call, bindingKey)
			}
		case *jsast.ExprStmt:
			if call, ok := v.X.(*jsast.CallExpr); ok {
				hc.add(call, "")
			}
		}
	}
	if len(hc.calls) == 0 {
		return nil
	}
	return hc
}

func (hc *hookCalls) add(call *jsast.CallExpr, bindingKey string) {
	name, ok := hookCalleeName(call)
	if !ok {
		return
	}
	key := bindingKey
	// The state and reducer hooks reset on a changed seed argument, so its
	// raw source text participates in the key even when no call was added,
	// removed or reordered.
	switch name {
	case "useState":
		if len(call.Args) > 0 {
			key += "(" + call.Args[0].Text() + ")"
		}
	case "useReducer":
		if len(call.Args) > 1 {
			key += "(" + call.Args[1].Text() + ")"
		}
	}
	hc.calls = append(hc.calls, hookCall{name: name, key: key})
	if !isBuiltinHook(name) {
		hc.customHooks = append(hc.customHooks, name)
	}
}

// hookCalleeName extracts the hook name from a call's callee: a plain
// identifier, or the final property of a non-computed member access.
func hookCalleeName(call *jsast.CallExpr) (string, bool) {
	var name string
	switch callee := call.Callee.(type) {
	case *jsast.Ident:
		name = callee.Name
	case *jsast.MemberExpr:
		name = callee.Property
	default:
		return "", false
	}
	if !isHookName(name) {
		return "", false
	}
	return name, true
}

// signatureKey joins the call-site lines in source order. Order sensitivity
// mirrors the call-order dependency of the hooks themselves.
func (hc *hookCalls) signatureKey() string {
	lines := make([]string, len(hc.calls))
	for i, c := range hc.calls {
		lines[i] = c.name + "{" + c.key + "}"
	}
	return strings.Join(lines, "\n")
}

func isBuiltinHook(name string) bool {
	_, ok := builtinHooks[name]
	return ok
}

func isHookName(name string) bool {
	return len(name) > 3 && strings.HasPrefix(name, "use") &&
		name[3] >= 'A' && name[3] <= 'Z'
}

func isComponentName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
