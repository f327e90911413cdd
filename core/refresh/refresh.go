// Package refresh implements the fast-refresh instrumentation pass.
//
// The pass takes a parsed module, classifies its top-level declarations,
// fingerprints each function's hook usage, and rewrites the tree so the
// live-reload runtime can decide, per edited component, whether to remount
// it or patch it in place. It is a single synchronous pass: all state is
// created per invocation, so concurrent calls on different modules are safe.
package refresh

import "github.com/ggdaltoso/aleph.js/core/jsast"

const (
	defaultRegFunc = "$RefreshReg$"
	defaultSigFunc = "$RefreshSig$"
)

// Options selects the runtime entry-point spellings the emitted code calls.
type Options struct {
	RegFunc string
	SigFunc string
}

// Transform instruments a module for fast refresh and returns the rewritten
// module. The returned module has a fresh statement list; signed function
// bodies are rewritten in place. Declarations whose shape does not match
// are skipped, never rejected: an uninstrumented statement is the only
// acceptable degraded outcome.
func Transform(m *jsast.Module, opts Options) *jsast.Module {
	if opts.RegFunc == "" {
		opts.RegFunc = defaultRegFunc
	}
	if opts.SigFunc == "" {
		opts.SigFunc = defaultSigFunc
	}

	t := &transformer{
		opts:      opts,
		hookNames: make(map[string]struct{}),
		sigs:      make(map[*jsast.Function]*signature),
		byStmt:    make(map[jsast.Stmt][]*jsast.Function),
		names:     newNameGen(m),
	}
	t.scan(m)
	t.resolveCustomHooks()
	return t.rewrite(m)
}

type transformer struct {
	opts Options

	// hookNames is the set of locally declared or imported hook names,
	// built top to bottom during the scan.
	hookNames map[string]struct{}

	// components is every component-named top-level binding, in source order.
	components []string

	// sigs associates signatures with functions by identity; the tree
	// itself is never annotated.
	sigs    map[*jsast.Function]*signature
	ordered []*signature

	// byStmt maps each defining statement to the functions signed under
	// it, in declarator order, so recording calls land right after it.
	byStmt map[jsast.Stmt][]*jsast.Function

	names *nameGen
}

// signature is the per-function fingerprint recorded for the runtime.
type signature struct {
	id          string
	fnName      string
	fn          *jsast.Function
	key         string
	customHooks []string
	forceReset  bool
}
