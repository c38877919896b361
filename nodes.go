package phc

import (
	"math"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text for nodeNum, the variable name for nodeName,
	// or the function name for nodeCall.
	name string
	// pos is the source column of the token that produced the node, or 0 for
	// nodes constructed directly.
	pos int

	left  *node
	right *node
	args  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeName // push lookup(name)
	nodeCall // evaluate args in order, then call name

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// Op is a binary operator.
type Op int8

const (
	OpAdd Op = iota + 1
	OpSub
	OpMul
	OpDiv
	OpPow
)

var opkinds = [...]nodeKind{
	OpAdd: nodeAdd,
	OpSub: nodeSub,
	OpMul: nodeMul,
	OpDiv: nodeDiv,
	OpPow: nodePow,
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// Literal creates an expression with a constant value. Panics if v is NaN.
func Literal(v float64) *Expr {
	if math.IsNaN(v) {
		panic("phc: NaN literal")
	}
	return newExpr(&node{kind: nodeNum, name: strconv.FormatFloat(v, 'g', -1, 64)})
}

// Variable creates an expression that looks up a name in the evaluation
// scope.
func Variable(name string) *Expr {
	return newExpr(&node{kind: nodeName, name: name})
}

// Binary creates an expression applying op to two subexpressions. The
// subexpressions may be shared with other expressions. Panics if op is not
// one of the defined operators.
func Binary(op Op, left, right *Expr) *Expr {
	if op < OpAdd || op > OpPow {
		panic("phc: invalid operator " + op.String())
	}
	return newExpr(&node{kind: opkinds[op], left: left.n, right: right.n})
}

// Call creates an expression calling a function by name. The name is
// resolved when the expression is evaluated.
func Call(name string, args ...*Expr) *Expr {
	n := &node{kind: nodeCall, name: name, args: make([]*node, len(args))}
	for i, a := range args {
		n.args[i] = a.n
	}
	return newExpr(n)
}

// names adds the variable names used in the tree to m.
func (n *node) names(m map[string]bool) {
	if n == nil {
		return
	}
	if n.kind == nodeName {
		m[n.name] = true
	}
	n.left.names(m)
	n.right.names(m)
	for _, a := range n.args {
		a.names(m)
	}
}

func (n *node) String() string {
	w := treeWriter{ascii: true}
	w.node(n, 0)
	return w.b.String()
}

// treeWriter prints trees with every term bracketed, alternating round and
// square brackets by depth.
type treeWriter struct {
	b strings.Builder
	// ascii selects * and / over × and ÷.
	ascii bool
}

var opsyms = [...]struct{ ascii, pretty string }{
	nodeAdd: {" + ", " + "},
	nodeSub: {" - ", " - "},
	nodeMul: {" * ", " × "},
	nodeDiv: {" / ", " ÷ "},
	nodePow: {" ^ ", " ^ "},
}

func (w *treeWriter) open(depth int) {
	if depth%2 == 0 {
		w.b.WriteByte('(')
	} else {
		w.b.WriteByte('[')
	}
}

func (w *treeWriter) close(depth int) {
	if depth%2 == 0 {
		w.b.WriteByte(')')
	} else {
		w.b.WriteByte(']')
	}
}

func (w *treeWriter) node(n *node, depth int) {
	if n == nil {
		w.b.WriteString("<nil>")
		return
	}
	w.open(depth)
	defer w.close(depth)
	switch n.kind {
	case nodeNum, nodeName:
		w.b.WriteString(n.name)
	case nodeCall:
		w.b.WriteString(n.name)
		w.open(depth + 1)
		for i, a := range n.args {
			if i > 0 {
				w.b.WriteString(", ")
			}
			w.node(a, depth+2)
		}
		w.close(depth + 1)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		w.node(n.left, depth+1)
		if w.ascii {
			w.b.WriteString(opsyms[n.kind].ascii)
		} else {
			w.b.WriteString(opsyms[n.kind].pretty)
		}
		w.node(n.right, depth+1)
	default:
		// Unfinished trees only appear while debugging the parser.
		w.b.WriteString("<" + n.kind.String() + ">")
	}
}
