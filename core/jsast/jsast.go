// Package jsast defines the module tree the refresh transform operates on.
//
// The tree models exactly the statement and expression shapes the transform
// has to inspect or synthesize. Everything else is carried as raw source
// text (RawStmt, RawExpr) and replayed verbatim by the printer, so a module
// round-trips without the tree having to understand all of JavaScript.
package jsast

import "strconv"

// Module is an ordered sequence of top-level statements.
type Module struct {
	Body []Stmt
}

// Comment is a single source comment, text including the // or /* */
// delimiters.
type Comment struct {
	Text string
}

// StmtBase carries the comments textually attached immediately before a
// statement. Every statement embeds it.
type StmtBase struct {
	Leading []Comment
}

func (b *StmtBase) LeadingComments() []Comment { return b.Leading }

func (b *StmtBase) SetLeading(cs []Comment) { b.Leading = cs }

type Stmt interface {
	stmtNode()
	LeadingComments() []Comment
	SetLeading([]Comment)
}

// FuncDecl is `function Name(...) { ... }`.
type FuncDecl struct {
	StmtBase
	Name *Ident
	Fn   *Function
}

// VarDecl is a `var`/`let`/`const` statement with one or more declarators.
type VarDecl struct {
	StmtBase
	Kind  string
	Decls []*Declarator
}

type Declarator struct {
	ID   Pattern
	Init Expr // nil when absent
}

// ImportDecl is an import statement. Raw holds the original source text;
// the binding fields exist so the scanner can feed the hook-name set.
type ImportDecl struct {
	StmtBase
	Default   *Ident
	Namespace *Ident
	Named     []ImportSpec
	Source    string
	Raw       string
}

type ImportSpec struct {
	Imported string // name in the source module
	Local    *Ident // local binding (alias or same as Imported)
}

// ExportStmt wraps an exported declaration (`export function App() {}`,
// `export default function App() {}`, `export const A = ...`). Export
// statements without an inner declaration are carried as RawStmt instead.
type ExportStmt struct {
	StmtBase
	Default bool
	Decl    Stmt
}

type ExprStmt struct {
	StmtBase
	X Expr
}

type ReturnStmt struct {
	StmtBase
	X Expr // nil for bare return
}

// RawStmt preserves a statement outside the modeled subset as source text.
type RawStmt struct {
	StmtBase
	Src string
}

func (*FuncDecl) stmtNode()   {}
func (*VarDecl) stmtNode()    {}
func (*ImportDecl) stmtNode() {}
func (*ExportStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
func (*RawStmt) stmtNode()    {}

// Block is a braced statement list (function bodies, primarily).
type Block struct {
	Stmts []Stmt
}

// Function is shared by function declarations, function expressions and
// arrows. Exactly one of Body and Concise is set; arrows with an
// expression body have Concise, everything else has Body.
type Function struct {
	Name    *Ident // named function expressions only; nil otherwise
	Params  []Pattern
	Body    *Block
	Concise Expr
	Arrow   bool
	Async   bool
}

type Expr interface {
	exprNode()
	// Text returns the expression's source text when it was parsed from
	// source, or a synthesized spelling for hand-built nodes.
	Text() string
}

type Ident struct {
	Name string
}

type StringLit struct {
	Value string
	Raw   string
}

type NumberLit struct {
	Raw string
}

type BoolLit struct {
	Value bool
}

type ArrayLit struct {
	Elems []Expr
	Raw   string
}

type CallExpr struct {
	Callee Expr
	Args   []Expr
	Raw    string
}

// MemberExpr is non-computed property access (`obj.prop`). Computed access
// and optional chains are carried as RawExpr.
type MemberExpr struct {
	Object   Expr
	Property string
	Raw      string
}

type FuncExpr struct {
	Fn  *Function
	Raw string
}

// RawExpr preserves an expression outside the modeled subset as source text.
type RawExpr struct {
	Src string
}

func (*Ident) exprNode()      {}
func (*StringLit) exprNode()  {}
func (*NumberLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*ArrayLit) exprNode()   {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*FuncExpr) exprNode()   {}
func (*RawExpr) exprNode()    {}

func (e *Ident) Text() string { return e.Name }

func (e *StringLit) Text() string {
	if e.Raw != "" {
		return e.Raw
	}
	// strconv.Quote escaping is valid JavaScript for the strings the
	// transform synthesizes (keys with embedded newlines, names).
	return strconv.Quote(e.Value)
}

func (e *NumberLit) Text() string { return e.Raw }

func (e *BoolLit) Text() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (e *ArrayLit) Text() string {
	if e.Raw != "" {
		return e.Raw
	}
	s := "["
	for i, el := range e.Elems {
		if i > 0 {
			s += ", "
		}
		s += el.Text()
	}
	return s + "]"
}

func (e *CallExpr) Text() string {
	if e.Raw != "" {
		return e.Raw
	}
	s := e.Callee.Text() + "("
	for i, a := range e.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Text()
	}
	return s + ")"
}

func (e *MemberExpr) Text() string {
	if e.Raw != "" {
		return e.Raw
	}
	return e.Object.Text() + "." + e.Property
}

func (e *FuncExpr) Text() string {
	if e.Raw != "" {
		return e.Raw
	}
	return printExpr(e)
}

func (e *RawExpr) Text() string { return e.Src }

// Pattern is a binding target. Destructuring patterns are carried textually;
// the transform only ever needs their source spelling.
type Pattern interface {
	patternNode()
	Text() string
}

func (*Ident) patternNode() {}

type RawPattern struct {
	Src string
}

func (*RawPattern) patternNode()   {}
func (p *RawPattern) Text() string { return p.Src }
