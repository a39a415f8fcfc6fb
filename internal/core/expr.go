// Package core is the lowered form produced by tuple-operation expansion.
// Every generated call shape lowers to a handful of positional primitives;
// field names survive only inside deferred conversions and diagnostics.
package core

type ExprKind uint8

const (
	// ExprLit is a literal value.
	ExprLit ExprKind = iota
	// ExprLocal references a let binding or a pattern binding.
	ExprLocal
	// ExprMake allocates a container from positional elements.
	ExprMake
	// ExprGet is a positional read: Tuple[Index].
	ExprGet
	// ExprSet is a positional replace producing a new container.
	ExprSet
	// ExprAssoc is an association-list value with known keys.
	ExprAssoc
	// ExprToAssoc converts a runtime container to an association list,
	// checking its arity against the shape at run time.
	ExprToAssoc
	// ExprMatch evaluates Subject and tries Arms in order.
	ExprMatch
)

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
	LitNothing
)

// Lit is a literal payload.
type Lit struct {
	Kind  LitKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Expr is one lowered expression node. Only the fields of its kind are set.
type Expr struct {
	Kind ExprKind

	Lit  Lit    // ExprLit
	Name string // ExprLocal

	Elems []*Expr  // ExprMake elements; ExprAssoc values
	Keys  []string // ExprAssoc keys, parallel to Elems

	Tuple *Expr // ExprGet, ExprSet
	Index int   // ExprGet, ExprSet
	Value *Expr // ExprSet

	Shape      string   // ExprToAssoc: shape name for diagnostics
	FieldNames []string // ExprToAssoc: zip order
	Arg        *Expr    // ExprToAssoc

	Subject *Expr // ExprMatch
	Arms    []Arm // ExprMatch
}

// PatKind classifies lowered patterns.
type PatKind uint8

const (
	// PatWildcard matches anything and binds nothing.
	PatWildcard PatKind = iota
	// PatBind matches anything and binds it to Name.
	PatBind
	// PatLit matches a literal by value.
	PatLit
	// PatTuple matches a container of exactly len(Elems) positions.
	PatTuple
)

type Pat struct {
	Kind  PatKind
	Name  string // PatBind
	Lit   Lit    // PatLit
	Elems []*Pat // PatTuple
}

// Arm is one pattern => body pair of a lowered match.
type Arm struct {
	Pat  *Pat
	Body *Expr
}

type StmtKind uint8

const (
	// StmtLet binds Value to Name for the rest of the program.
	StmtLet StmtKind = iota
	// StmtShow evaluates Value and prints its rendering.
	StmtShow
)

type Stmt struct {
	Kind  StmtKind
	Name  string // StmtLet
	Value *Expr
}

// Program is a lowered file sequence, executed top to bottom.
type Program struct {
	Stmts []Stmt
}

// Constructors keep call sites terse in the expander.

func NewLit(l Lit) *Expr            { return &Expr{Kind: ExprLit, Lit: l} }
func NewLocal(name string) *Expr    { return &Expr{Kind: ExprLocal, Name: name} }
func NewMake(elems []*Expr) *Expr   { return &Expr{Kind: ExprMake, Elems: elems} }
func NewGet(t *Expr, i int) *Expr   { return &Expr{Kind: ExprGet, Tuple: t, Index: i} }
func NewSet(t *Expr, i int, v *Expr) *Expr {
	return &Expr{Kind: ExprSet, Tuple: t, Index: i, Value: v}
}

func NewAssoc(keys []string, vals []*Expr) *Expr {
	return &Expr{Kind: ExprAssoc, Keys: keys, Elems: vals}
}

func NewToAssoc(shapeName string, fieldNames []string, arg *Expr) *Expr {
	return &Expr{Kind: ExprToAssoc, Shape: shapeName, FieldNames: fieldNames, Arg: arg}
}

func NewMatch(subject *Expr, arms []Arm) *Expr {
	return &Expr{Kind: ExprMatch, Subject: subject, Arms: arms}
}
